package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

type Enrollment struct {
	ID                uint   `gorm:"primaryKey"`
	Fullname          string `gorm:"not null"`
	Email             string `gorm:"not null"`
	Gender            string `gorm:"not null;default:NS/NC"`
	Age               int    `gorm:"not null;default:0"`
	IsFirstActivity   bool   `gorm:"column:is_first_activity;not null;default:false"`
	IDAdmin           *uint  `gorm:"column:id_admin"`
	IDCourse          uint   `gorm:"column:id_course;not null;index"`
	GroupID           uint   `gorm:"column:group_id;index"`
	AcceptsNewsletter bool   `gorm:"not null;default:false"`

	Course Course  `gorm:"foreignKey:IDCourse"`
	Minors []Minor `gorm:"foreignKey:EnrollmentID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Minor struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Age          int    `gorm:"not null"`
	EnrollmentID uint   `gorm:"not null;index"`
}

type EnrollmentDAO struct {
	db      *gorm.DB
	courses *CourseDAO
}

func NewEnrollmentDAO(db *gorm.DB, courses *CourseDAO) *EnrollmentDAO {
	return &EnrollmentDAO{
		db:      db,
		courses: courses,
	}
}

func (d *EnrollmentDAO) FindAll(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Preload("Course").
		Preload("Minors").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) FindByID(ctx context.Context, id uint) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).Preload("Minors").First(&enrollment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, ErrEnrollmentNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

// FindAdultsInGroup returns the other adults sharing an enrollment's group.
func (d *EnrollmentDAO) FindAdultsInGroup(ctx context.Context, groupID, selfID uint) ([]Enrollment, error) {
	var adults []Enrollment

	result := d.db.WithContext(ctx).
		Where("group_id = ? AND id <> ?", groupID, selfID).
		Find(&adults)
	if result.Error != nil {
		return nil, result.Error
	}

	return adults, nil
}

func (d *EnrollmentDAO) FindByCourseID(ctx context.Context, courseID uint) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Preload("Course").
		Preload("Minors").
		Where("id_course = ?", courseID).
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

// CreateGroup registers a whole group atomically: tickets for every member are
// reserved first, then the leading enrollment, its minors and the secondary
// adults are inserted. Any failure leaves no rows and no ticket change behind.
func (d *EnrollmentDAO) CreateGroup(ctx context.Context, primary Enrollment, minors []Minor, adults []Enrollment) (Enrollment, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		required := 1 + len(adults) + len(minors)
		if err := d.courses.ReserveTickets(tx, primary.IDCourse, required); err != nil {
			return err
		}

		if err := tx.Create(&primary).Error; err != nil {
			return err
		}

		// A group without a caller-supplied id inherits the leader's primary
		// key, so group numbers come from the enrollments sequence and two
		// concurrent registrations can never collide.
		if primary.GroupID == 0 {
			primary.GroupID = primary.ID
			if err := tx.Model(&Enrollment{}).Where("id = ?", primary.ID).
				Update("group_id", primary.GroupID).Error; err != nil {
				return err
			}
		}

		if len(minors) > 0 {
			for i := range minors {
				minors[i].EnrollmentID = primary.ID
			}
			if err := tx.Create(&minors).Error; err != nil {
				return err
			}
		}

		if len(adults) > 0 {
			for i := range adults {
				adults[i].IDCourse = primary.IDCourse
				adults[i].GroupID = primary.GroupID
				if adults[i].IDAdmin == nil {
					adults[i].IDAdmin = primary.IDAdmin
				}
			}
			if err := tx.Create(&adults).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Enrollment{}, err
	}

	return primary, nil
}

// UpdateGroup rewrites the leading enrollment's scalar fields and upserts the
// minors and secondary adults carried in the payload. Payload entries with an
// id update the existing row (scoped to the group), entries without one join
// the group as new members and reserve a ticket each. Members missing from the
// payload are left alone; removing people is DeleteGroup's job.
func (d *EnrollmentDAO) UpdateGroup(ctx context.Context, id uint, primary Enrollment, minors []Minor, adults []Enrollment) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Enrollment
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}

			return err
		}

		courseID := primary.IDCourse
		if courseID == 0 {
			courseID = existing.IDCourse
		}

		groupID := primary.GroupID
		if groupID == 0 {
			groupID = existing.GroupID
		}

		added := 0
		for _, m := range minors {
			if m.ID == 0 {
				added++
			}
		}
		for _, a := range adults {
			if a.ID == 0 {
				added++
			}
		}
		if added > 0 {
			if err := d.courses.ReserveTickets(tx, courseID, added); err != nil {
				return err
			}
		}

		err := tx.Model(&Enrollment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"fullname":           primary.Fullname,
			"email":              primary.Email,
			"gender":             primary.Gender,
			"age":                primary.Age,
			"is_first_activity":  primary.IsFirstActivity,
			"id_admin":           primary.IDAdmin,
			"id_course":          courseID,
			"group_id":           groupID,
			"accepts_newsletter": primary.AcceptsNewsletter,
		}).Error
		if err != nil {
			return err
		}

		for _, m := range minors {
			if m.ID != 0 {
				err = tx.Model(&Minor{}).
					Where("id = ? AND enrollment_id = ?", m.ID, id).
					Updates(map[string]interface{}{"name": m.Name, "age": m.Age}).Error
			} else {
				m.EnrollmentID = id
				err = tx.Create(&m).Error
			}
			if err != nil {
				return err
			}
		}

		for _, a := range adults {
			if a.ID != 0 {
				err = tx.Model(&Enrollment{}).
					Where("id = ? AND group_id = ?", a.ID, groupID).
					Updates(map[string]interface{}{
						"fullname": a.Fullname,
						"email":    a.Email,
						"gender":   a.Gender,
						"age":      a.Age,
					}).Error
			} else {
				a.IDCourse = courseID
				a.GroupID = groupID
				if a.IDAdmin == nil {
					a.IDAdmin = primary.IDAdmin
				}
				err = tx.Create(&a).Error
			}
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteGroup removes the whole group any of whose members was targeted: all
// minors attached to the group, then every adult sharing the group id. The
// freed tickets go back to the course and their count is returned.
func (d *EnrollmentDAO) DeleteGroup(ctx context.Context, id uint) (int, error) {
	var ticketsReturned int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target Enrollment
		if err := tx.First(&target, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}

			return err
		}

		var group []Enrollment
		if err := tx.Where("group_id = ?", target.GroupID).Find(&group).Error; err != nil {
			return err
		}

		ids := make([]uint, len(group))
		for i, e := range group {
			ids[i] = e.ID
		}
		adultCount := len(ids)

		result := tx.Where("enrollment_id IN ?", ids).Delete(&Minor{})
		if result.Error != nil {
			return result.Error
		}
		minorsDeleted := int(result.RowsAffected)

		if err := tx.Where("id IN ?", ids).Delete(&Enrollment{}).Error; err != nil {
			return err
		}

		ticketsReturned = minorsDeleted + adultCount

		return d.courses.ReleaseTickets(tx, target.IDCourse, ticketsReturned)
	})
	if err != nil {
		return 0, err
	}

	return ticketsReturned, nil
}
