package domain

import "time"

// Enrollment is one adult seat on a course. The first enrollment created for a
// registration leads the group; further adults share its GroupID and are exposed
// through Adults. Minors always hang off the group leader.
type Enrollment struct {
	ID                uint         `json:"id"`
	Fullname          string       `json:"fullname"`
	Email             string       `json:"email"`
	Gender            string       `json:"gender"`
	Age               int          `json:"age"`
	IsFirstActivity   bool         `json:"is_first_activity"`
	IDAdmin           *uint        `json:"id_admin"`
	IDCourse          uint         `json:"id_course"`
	GroupID           uint         `json:"group_id"`
	AcceptsNewsletter bool         `json:"accepts_newsletter"`
	CourseTitle       string       `json:"course_title,omitempty"`
	Minors            []Minor      `json:"minors,omitempty"`
	Adults            []Enrollment `json:"adults,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

type Minor struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	EnrollmentID uint   `json:"enrollment_id"`
}

// TicketsRequired is the number of course seats a new registration consumes:
// the group leader plus every secondary adult and minor.
func (e *Enrollment) TicketsRequired(minors []Minor, adults []Enrollment) int {
	return 1 + len(adults) + len(minors)
}
