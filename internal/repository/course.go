package repository

import (
	"context"
	"fmt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository/dao"
)

var (
	ErrCourseNotFound      = dao.ErrCourseNotFound
	ErrInsufficientTickets = dao.ErrInsufficientTickets
)

type CourseDAO interface {
	Insert(ctx context.Context, course dao.Course) (dao.Course, error)
	FindAll(ctx context.Context) ([]dao.Course, error)
	FindByID(ctx context.Context, id uint) (dao.Course, error)
	Update(ctx context.Context, course dao.Course) (dao.Course, error)
	Delete(ctx context.Context, id uint) error
}

type CourseRepository struct {
	dao CourseDAO
}

func NewCourseRepository(dao CourseDAO) *CourseRepository {
	return &CourseRepository{
		dao: dao,
	}
}

func (r *CourseRepository) Create(ctx context.Context, course domain.Course) (domain.Course, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(course))
	if err != nil {
		return domain.Course{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CourseRepository) GetAll(ctx context.Context) ([]domain.Course, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	courses := make([]domain.Course, len(found))
	for i, c := range found {
		courses[i] = r.daoToDomain(c)
	}

	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uint) (domain.Course, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Course{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CourseRepository) Update(ctx context.Context, course domain.Course) (domain.Course, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(course))
	if err != nil {
		return domain.Course{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CourseRepository) domainToDao(c domain.Course) dao.Course {
	return dao.Course{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Link:        c.Link,
		Tickets:     c.Tickets,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *CourseRepository) daoToDomain(c dao.Course) domain.Course {
	return domain.Course{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Link:        c.Link,
		Tickets:     c.Tickets,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
