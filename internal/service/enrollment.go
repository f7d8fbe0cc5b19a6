package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/repository"
)

const defaultGender = "NS/NC"

var (
	ErrEnrollmentNotFound  = repository.ErrEnrollmentNotFound
	ErrInsufficientTickets = repository.ErrInsufficientTickets
	ErrMissingRequiredData = errors.New("fullname, email and id_course are required")
	ErrPrimaryUnderage     = errors.New("the group leader must be at least 14 years old")
)

type EnrollmentRepository interface {
	GetAll(ctx context.Context) ([]domain.Enrollment, error)
	GetByID(ctx context.Context, id uint) (domain.Enrollment, error)
	GetByIDWithMinors(ctx context.Context, id uint) (domain.Enrollment, error)
	GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error)
	CreateGroup(ctx context.Context, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) (domain.Enrollment, error)
	UpdateGroup(ctx context.Context, id uint, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) error
	DeleteGroup(ctx context.Context, id uint) (int, error)
}

// ConfirmationSender delivers the registration confirmation to the group
// leader. Sending is best-effort and never fails the enrollment.
type ConfirmationSender interface {
	SendEnrollmentConfirmation(to, fullname, courseTitle string) error
}

type EnrollmentService struct {
	repo    EnrollmentRepository
	courses CourseRepository
	mailer  ConfirmationSender
}

func NewEnrollmentService(repo EnrollmentRepository, courses CourseRepository, mailer ConfirmationSender) *EnrollmentService {
	return &EnrollmentService{
		repo:    repo,
		courses: courses,
		mailer:  mailer,
	}
}

func (s *EnrollmentService) GetEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	enrollments, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return enrollments, nil
}

func (s *EnrollmentService) GetEnrollment(ctx context.Context, id uint) (domain.Enrollment, error) {
	enrollment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) GetEnrollmentWithMinors(ctx context.Context, id uint) (domain.Enrollment, error) {
	enrollment, err := s.repo.GetByIDWithMinors(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.GetByIDWithMinors -> %w", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) GetEnrollmentsByCourse(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	enrollments, err := s.repo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByCourseID -> %w", err)
	}

	return enrollments, nil
}

// CreateEnrollment registers a group leader with their minors and secondary
// adults. The whole group either lands together with its tickets reserved or
// not at all.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) (domain.Enrollment, error) {
	if primary.Fullname == "" || primary.Email == "" || primary.IDCourse == 0 {
		return domain.Enrollment{}, ErrMissingRequiredData
	}
	if primary.Age < 14 {
		return domain.Enrollment{}, ErrPrimaryUnderage
	}

	if primary.Gender == "" {
		primary.Gender = defaultGender
	}
	for i := range adults {
		if adults[i].Gender == "" {
			adults[i].Gender = defaultGender
		}
	}

	created, err := s.repo.CreateGroup(ctx, primary, minors, adults)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.CreateGroup -> %w", err)
	}

	s.notifyConfirmation(ctx, created)

	return created, nil
}

func (s *EnrollmentService) UpdateEnrollment(ctx context.Context, id uint, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) error {
	if err := s.repo.UpdateGroup(ctx, id, primary, minors, adults); err != nil {
		return fmt.Errorf("s.repo.UpdateGroup -> %w", err)
	}

	return nil
}

func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id uint) (int, error) {
	ticketsReturned, err := s.repo.DeleteGroup(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteGroup -> %w", err)
	}

	return ticketsReturned, nil
}

func (s *EnrollmentService) notifyConfirmation(ctx context.Context, enrollment domain.Enrollment) {
	if s.mailer == nil {
		return
	}

	course, err := s.courses.GetByID(ctx, enrollment.IDCourse)
	if err != nil {
		zap.L().Warn("skipping enrollment confirmation mail",
			zap.Uint("enrollment_id", enrollment.ID),
			zap.Error(err))
		return
	}

	go func() {
		if err := s.mailer.SendEnrollmentConfirmation(enrollment.Email, enrollment.Fullname, course.Title); err != nil {
			zap.L().Warn("failed to send enrollment confirmation mail",
				zap.Uint("enrollment_id", enrollment.ID),
				zap.Error(err))
		}
	}()
}
