package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAdminUsernameExists = errors.New("admin already exists")
	ErrAdminNotFound       = errors.New("admin not found")
)

type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role string `gorm:"not null;default:admin"` // "admin" or "superadmin"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) Insert(ctx context.Context, admin Admin) (Admin, error) {
	result := d.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_admins_username"`) {
			return Admin{}, ErrAdminUsernameExists
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByID(ctx context.Context, id uint) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindAll(ctx context.Context) ([]Admin, error) {
	var admins []Admin

	result := d.db.WithContext(ctx).Order("username").Find(&admins)
	if result.Error != nil {
		return nil, result.Error
	}

	return admins, nil
}

func (d *AdminDAO) Update(ctx context.Context, admin Admin) (Admin, error) {
	updates := map[string]interface{}{
		"username": admin.Username,
		"role":     admin.Role,
	}
	if admin.Password != "" {
		updates["password"] = admin.Password
	}

	result := d.db.WithContext(ctx).Model(&Admin{}).Where("id = ?", admin.ID).Updates(updates)
	if result.Error != nil {
		return Admin{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Admin{}, ErrAdminNotFound
	}

	return d.FindByID(ctx, admin.ID)
}

func (d *AdminDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Admin{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
