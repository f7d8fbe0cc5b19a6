package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required" format:"DD/MM/YYYY"`
	Link        string `json:"link" binding:"required"`
	Tickets     int    `json:"tickets"`
}

func (req *CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(5, 255)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Link, validation.Required, is.URL),
		validation.Field(&req.Tickets, validation.Min(0)),
	)
}

type UpdateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date" format:"DD/MM/YYYY"`
	Link        string `json:"link"`
	Tickets     int    `json:"tickets"`
}

func (req *UpdateCourseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(5, 255)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Link, validation.Required, is.URL),
		validation.Field(&req.Tickets, validation.Min(0)),
	)
}
