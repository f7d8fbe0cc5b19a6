package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type MinorPayload struct {
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (p *MinorPayload) Validate() error {
	return validation.ValidateStruct(
		p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Age, validation.Min(0), validation.Max(14)),
	)
}

type AdultPayload struct {
	ID                uint   `json:"id,omitempty"`
	Fullname          string `json:"fullname"`
	Email             string `json:"email"`
	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	IsFirstActivity   bool   `json:"is_first_activity"`
	IDAdmin           *uint  `json:"id_admin"`
	AcceptsNewsletter bool   `json:"accepts_newsletter"`
}

func (p *AdultPayload) Validate() error {
	return validation.ValidateStruct(
		p,
		validation.Field(&p.Fullname, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

type EnrollmentRequest struct {
	Fullname          string         `json:"fullname" binding:"required"`
	Email             string         `json:"email" binding:"required"`
	Gender            string         `json:"gender"`
	Age               int            `json:"age"`
	IsFirstActivity   bool           `json:"is_first_activity"`
	IDAdmin           *uint          `json:"id_admin"`
	IDCourse          uint           `json:"id_course" binding:"required"`
	GroupID           uint           `json:"group_id"`
	AcceptsNewsletter bool           `json:"accepts_newsletter"`
	Minors            []MinorPayload `json:"minors"`
	Adults            []AdultPayload `json:"adults"`
}

func (req *EnrollmentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Fullname, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.IDCourse, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Age, validation.Min(14)),
	)
	if err != nil {
		return err
	}

	for i := range req.Minors {
		if err := req.Minors[i].Validate(); err != nil {
			return err
		}
	}
	for i := range req.Adults {
		if err := req.Adults[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
