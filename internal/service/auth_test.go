package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository"
)

type fakeAdminRepo struct {
	admins map[string]domain.Admin
	nextID uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		admins: make(map[string]domain.Admin),
		nextID: 1,
	}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	if _, exists := f.admins[admin.Username]; exists {
		return domain.Admin{}, repository.ErrAdminUsernameExists
	}

	admin.ID = f.nextID
	f.nextID++
	f.admins[admin.Username] = admin

	return admin, nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id uint) (domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.ID == id {
			return admin, nil
		}
	}

	return domain.Admin{}, repository.ErrAdminNotFound
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (domain.Admin, error) {
	admin, exists := f.admins[username]
	if !exists {
		return domain.Admin{}, repository.ErrAdminNotFound
	}

	return admin, nil
}

func (f *fakeAdminRepo) GetAll(_ context.Context) ([]domain.Admin, error) {
	var all []domain.Admin
	for _, admin := range f.admins {
		all = append(all, admin)
	}

	return all, nil
}

func (f *fakeAdminRepo) Update(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	existing, err := f.GetByID(context.Background(), admin.ID)
	if err != nil {
		return domain.Admin{}, err
	}

	if admin.Password == "" {
		admin.Password = existing.Password
	}
	delete(f.admins, existing.Username)
	f.admins[admin.Username] = admin

	return admin, nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id uint) error {
	for username, admin := range f.admins {
		if admin.ID == id {
			delete(f.admins, username)
			return nil
		}
	}

	return repository.ErrAdminNotFound
}

func TestCreateAdmin_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAuthService(repo)

	created, err := svc.CreateAdmin(context.Background(), domain.Admin{
		Username: "gestora",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, created.Role)
	assert.NotEqual(t, "secreta123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secreta123")))
}

func TestLogin(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAuthService(repo)

	_, err := svc.CreateAdmin(context.Background(), domain.Admin{
		Username: "gestora",
		Password: "secreta123",
	})
	require.NoError(t, err)

	admin, err := svc.Login(context.Background(), "gestora", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, "gestora", admin.Username)

	_, err = svc.Login(context.Background(), "gestora", "incorrecta")
	require.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nadie", "secreta123")
	require.ErrorIs(t, err, ErrAdminNotFound)
}

func TestUpdateAdmin_KeepsPasswordWhenEmpty(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAuthService(repo)

	created, err := svc.CreateAdmin(context.Background(), domain.Admin{
		Username: "gestora",
		Password: "secreta123",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAdmin(context.Background(), domain.Admin{
		ID:       created.ID,
		Username: "gestora",
		Role:     domain.RoleSuperadmin,
	})
	require.NoError(t, err)

	// The old password still works.
	admin, err := svc.Login(context.Background(), "gestora", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperadmin, admin.Role)
}
