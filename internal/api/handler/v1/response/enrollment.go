package response

import "github.com/lacultural/enrollments-api/internal/domain"

type Message struct {
	Message string `json:"message"`
}

type EnrollmentCreated struct {
	Message    string            `json:"message"`
	Enrollment domain.Enrollment `json:"enrollment"`
}

type EnrollmentDeleted struct {
	Message         string `json:"message"`
	TicketsReturned int    `json:"ticketsReturned"`
}
