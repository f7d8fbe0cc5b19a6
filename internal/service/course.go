package service

import (
	"context"
	"fmt"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository"
)

var (
	ErrCourseNotFound = repository.ErrCourseNotFound
)

type CourseRepository interface {
	Create(ctx context.Context, course domain.Course) (domain.Course, error)
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id uint) (domain.Course, error)
	Update(ctx context.Context, course domain.Course) (domain.Course, error)
	Delete(ctx context.Context, id uint) error
}

type CourseService struct {
	repo CourseRepository
}

func NewCourseService(repo CourseRepository) *CourseService {
	return &CourseService{
		repo: repo,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error) {
	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return domain.Course{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CourseService) GetCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return courses, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id uint) (domain.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Course{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, course domain.Course) (domain.Course, error) {
	updated, err := s.repo.Update(ctx, course)
	if err != nil {
		return domain.Course{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
