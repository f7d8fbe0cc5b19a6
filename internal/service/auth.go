package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository"
)

var (
	ErrAdminUsernameExists = repository.ErrAdminUsernameExists
	ErrAdminNotFound       = repository.ErrAdminNotFound
	ErrWrongPassword       = errors.New("wrong password")
)

type AuthAdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	GetByID(ctx context.Context, id uint) (domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (domain.Admin, error)
	GetAll(ctx context.Context) ([]domain.Admin, error)
	Update(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	Delete(ctx context.Context, id uint) error
}

type AuthService struct {
	repo AuthAdminRepository
}

func NewAuthService(repo AuthAdminRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}

		return domain.Admin{}, fmt.Errorf("s.repo.GetByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrWrongPassword
	}

	return admin, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id uint) (domain.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return admin, nil
}

func (s *AuthService) GetAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return admins, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	hashed, err := hashPassword(admin.Password)
	if err != nil {
		return domain.Admin{}, err
	}
	admin.Password = hashed

	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) UpdateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	if admin.Password != "" {
		hashed, err := hashPassword(admin.Password)
		if err != nil {
			return domain.Admin{}, err
		}
		admin.Password = hashed
	}

	updated, err := s.repo.Update(ctx, admin)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *AuthService) DeleteAdmin(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
