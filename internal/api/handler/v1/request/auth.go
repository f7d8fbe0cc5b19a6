package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// At least 8 characters with one letter and one digit. The lookaheads need
// regexp2; the stdlib engine does not support them.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin superadmin"`
}

func (req *CreateAdminRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.In("admin", "superadmin")),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"omitempty,oneof=admin superadmin"`
}

func (req *UpdateAdminRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Role, validation.In("admin", "superadmin")),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password)
	}

	return nil
}

func validatePassword(password string) error {
	passwordExp := regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	matched, err := passwordExp.MatchString(password)
	if err != nil || !matched {
		return errInvalidPassword
	}

	return nil
}
