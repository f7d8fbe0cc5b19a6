package repository

import (
	"context"
	"fmt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository/dao"
)

var (
	ErrAdminUsernameExists = dao.ErrAdminUsernameExists
	ErrAdminNotFound       = dao.ErrAdminNotFound
)

type AdminDAO interface {
	Insert(ctx context.Context, admin dao.Admin) (dao.Admin, error)
	FindByID(ctx context.Context, id uint) (dao.Admin, error)
	FindByUsername(ctx context.Context, username string) (dao.Admin, error)
	FindAll(ctx context.Context) ([]dao.Admin, error)
	Update(ctx context.Context, admin dao.Admin) (dao.Admin, error)
	Delete(ctx context.Context, id uint) error
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(admin))
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uint) (domain.Admin, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) GetAll(ctx context.Context) ([]domain.Admin, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	admins := make([]domain.Admin, len(found))
	for i, a := range found {
		admins[i] = r.daoToDomain(a)
	}

	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(admin))
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *AdminRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AdminRepository) domainToDao(a domain.Admin) dao.Admin {
	return dao.Admin{
		ID:        a.ID,
		Username:  a.Username,
		Password:  a.Password,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AdminRepository) daoToDomain(a dao.Admin) domain.Admin {
	return domain.Admin{
		ID:        a.ID,
		Username:  a.Username,
		Password:  a.Password,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
