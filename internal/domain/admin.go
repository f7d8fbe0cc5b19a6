package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type Admin struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
