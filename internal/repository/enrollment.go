package repository

import (
	"context"
	"fmt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository/dao"
)

var (
	ErrEnrollmentNotFound = dao.ErrEnrollmentNotFound
)

type EnrollmentDAO interface {
	FindAll(ctx context.Context) ([]dao.Enrollment, error)
	FindByID(ctx context.Context, id uint) (dao.Enrollment, error)
	FindAdultsInGroup(ctx context.Context, groupID, selfID uint) ([]dao.Enrollment, error)
	FindByCourseID(ctx context.Context, courseID uint) ([]dao.Enrollment, error)
	CreateGroup(ctx context.Context, primary dao.Enrollment, minors []dao.Minor, adults []dao.Enrollment) (dao.Enrollment, error)
	UpdateGroup(ctx context.Context, id uint, primary dao.Enrollment, minors []dao.Minor, adults []dao.Enrollment) error
	DeleteGroup(ctx context.Context, id uint) (int, error)
}

type EnrollmentRepository struct {
	dao EnrollmentDAO
}

func NewEnrollmentRepository(dao EnrollmentDAO) *EnrollmentRepository {
	return &EnrollmentRepository{
		dao: dao,
	}
}

func (r *EnrollmentRepository) GetAll(ctx context.Context) ([]domain.Enrollment, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// GetByID loads one enrollment with its minors and the other adults of its group.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uint) (domain.Enrollment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	adults, err := r.dao.FindAdultsInGroup(ctx, found.GroupID, found.ID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindAdultsInGroup -> %w", err)
	}

	enrollment := r.daoToDomain(found)
	enrollment.Adults = r.daosToDomain(adults)

	return enrollment, nil
}

func (r *EnrollmentRepository) GetByIDWithMinors(ctx context.Context, id uint) (domain.Enrollment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EnrollmentRepository) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCourseID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EnrollmentRepository) CreateGroup(ctx context.Context, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) (domain.Enrollment, error) {
	created, err := r.dao.CreateGroup(ctx, r.domainToDao(primary), r.minorsDomainToDao(minors), r.domainsToDao(adults))
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.CreateGroup -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EnrollmentRepository) UpdateGroup(ctx context.Context, id uint, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) error {
	err := r.dao.UpdateGroup(ctx, id, r.domainToDao(primary), r.minorsDomainToDao(minors), r.domainsToDao(adults))
	if err != nil {
		return fmt.Errorf("r.dao.UpdateGroup -> %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) DeleteGroup(ctx context.Context, id uint) (int, error) {
	ticketsReturned, err := r.dao.DeleteGroup(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteGroup -> %w", err)
	}

	return ticketsReturned, nil
}

func (r *EnrollmentRepository) domainToDao(e domain.Enrollment) dao.Enrollment {
	return dao.Enrollment{
		ID:                e.ID,
		Fullname:          e.Fullname,
		Email:             e.Email,
		Gender:            e.Gender,
		Age:               e.Age,
		IsFirstActivity:   e.IsFirstActivity,
		IDAdmin:           e.IDAdmin,
		IDCourse:          e.IDCourse,
		GroupID:           e.GroupID,
		AcceptsNewsletter: e.AcceptsNewsletter,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EnrollmentRepository) daoToDomain(e dao.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		ID:                e.ID,
		Fullname:          e.Fullname,
		Email:             e.Email,
		Gender:            e.Gender,
		Age:               e.Age,
		IsFirstActivity:   e.IsFirstActivity,
		IDAdmin:           e.IDAdmin,
		IDCourse:          e.IDCourse,
		GroupID:           e.GroupID,
		AcceptsNewsletter: e.AcceptsNewsletter,
		CourseTitle:       e.Course.Title,
		Minors:            r.minorsDaoToDomain(e.Minors),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EnrollmentRepository) domainsToDao(enrollments []domain.Enrollment) []dao.Enrollment {
	daos := make([]dao.Enrollment, len(enrollments))
	for i, e := range enrollments {
		daos[i] = r.domainToDao(e)
	}

	return daos
}

func (r *EnrollmentRepository) daosToDomain(enrollments []dao.Enrollment) []domain.Enrollment {
	if len(enrollments) == 0 {
		return nil
	}

	result := make([]domain.Enrollment, len(enrollments))
	for i, e := range enrollments {
		result[i] = r.daoToDomain(e)
	}

	return result
}

func (r *EnrollmentRepository) minorsDomainToDao(minors []domain.Minor) []dao.Minor {
	daos := make([]dao.Minor, len(minors))
	for i, m := range minors {
		daos[i] = dao.Minor{
			ID:           m.ID,
			Name:         m.Name,
			Age:          m.Age,
			EnrollmentID: m.EnrollmentID,
		}
	}

	return daos
}

func (r *EnrollmentRepository) minorsDaoToDomain(minors []dao.Minor) []domain.Minor {
	if len(minors) == 0 {
		return nil
	}

	result := make([]domain.Minor, len(minors))
	for i, m := range minors {
		result[i] = domain.Minor{
			ID:           m.ID,
			Name:         m.Name,
			Age:          m.Age,
			EnrollmentID: m.EnrollmentID,
		}
	}

	return result
}
