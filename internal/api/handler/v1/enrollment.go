package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lacultural/enrollments-api/internal/api/handler/v1/request"
	"github.com/lacultural/enrollments-api/internal/api/handler/v1/response"
	"github.com/lacultural/enrollments-api/internal/api/middleware"
	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/service"
)

type EnrollmentService interface {
	GetEnrollments(ctx context.Context) ([]domain.Enrollment, error)
	GetEnrollment(ctx context.Context, id uint) (domain.Enrollment, error)
	GetEnrollmentWithMinors(ctx context.Context, id uint) (domain.Enrollment, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID uint) ([]domain.Enrollment, error)
	CreateEnrollment(ctx context.Context, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) (domain.Enrollment, error)
	UpdateEnrollment(ctx context.Context, id uint, primary domain.Enrollment, minors []domain.Minor, adults []domain.Enrollment) error
	DeleteEnrollment(ctx context.Context, id uint) (int, error)
}

type EnrollmentHandler struct {
	svc EnrollmentService
}

func NewEnrollmentHandler(svc EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		svc: svc,
	}
}

// HandleGetEnrollments godoc
// @Summary      List all enrollments
// @Tags         enrollments
// @Produce      json
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleGetEnrollments(ctx *gin.Context) {
	enrollments, err := h.svc.GetEnrollments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEnrollments -> h.svc.GetEnrollments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// HandleGetEnrollment godoc
// @Summary      Get one enrollment with its minors and group adults
// @Tags         enrollments
// @Produce      json
// @Param        enrollmentID  path      int  true  "Enrollment ID"
// @Success      200  {object}  domain.Enrollment
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID} [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleGetEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollmentID")
	if !ok {
		return
	}

	enrollment, err := h.svc.GetEnrollment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("enrollment", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetEnrollment -> h.svc.GetEnrollment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// HandleGetEnrollmentWithMinors godoc
// @Summary      Get one enrollment including its minors
// @Tags         enrollments
// @Produce      json
// @Param        enrollmentID  path      int  true  "Enrollment ID"
// @Success      200  {object}  domain.Enrollment
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID}/with-minors [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleGetEnrollmentWithMinors(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollmentID")
	if !ok {
		return
	}

	enrollment, err := h.svc.GetEnrollmentWithMinors(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("enrollment", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetEnrollmentWithMinors -> h.svc.GetEnrollmentWithMinors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// HandleGetEnrollmentsByCourse godoc
// @Summary      List enrollments of a course
// @Tags         enrollments
// @Produce      json
// @Param        courseID  path      int  true  "Course ID"
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/course/{courseID} [get]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleGetEnrollmentsByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseID")
	if !ok {
		return
	}

	enrollments, err := h.svc.GetEnrollmentsByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEnrollmentsByCourse -> h.svc.GetEnrollmentsByCourse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// HandleCreateEnrollment godoc
// @Summary      Register an enrollment group
// @Description  Creates the group leader plus any minors and secondary adults, reserving one course ticket per person.
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        input  body      request.EnrollmentRequest  true  "Enrollment group"
// @Success      201    {object}  response.EnrollmentCreated
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /enrollments [post]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleCreateEnrollment(ctx *gin.Context) {
	var input request.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	primary, minors, adults := h.toDomain(input)
	if primary.IDAdmin == nil {
		if adminID, exists := ctx.Get(middleware.ClaimsKeyAdminID); exists {
			if id, isUint := adminID.(uint); isUint {
				primary.IDAdmin = &id
			}
		}
	}

	created, err := h.svc.CreateEnrollment(ctx.Request.Context(), primary, minors, adults)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequiredData),
			errors.Is(err, service.ErrPrimaryUnderage),
			errors.Is(err, service.ErrInsufficientTickets):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrCourseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("course", "id", input.IDCourse))
		default:
			err = fmt.Errorf("v1.HandleCreateEnrollment -> h.svc.CreateEnrollment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.EnrollmentCreated{
		Message:    "enrollment created",
		Enrollment: created,
	})
}

// HandleUpdateEnrollment godoc
// @Summary      Update an enrollment group
// @Description  Rewrites the group leader and upserts the minors and secondary adults carried in the payload. New members reserve a ticket each.
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        enrollmentID  path      int                        true  "Enrollment ID"
// @Param        input         body      request.EnrollmentRequest  true  "Enrollment group"
// @Success      200  {object}  response.Message
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID} [put]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleUpdateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollmentID")
	if !ok {
		return
	}

	var input request.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	primary, minors, adults := h.toDomain(input)

	if err := h.svc.UpdateEnrollment(ctx.Request.Context(), id, primary, minors, adults); err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("enrollment", "id", id))
		case errors.Is(err, service.ErrCourseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("course", "id", input.IDCourse))
		case errors.Is(err, service.ErrInsufficientTickets):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateEnrollment -> h.svc.UpdateEnrollment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "enrollment updated"})
}

// HandleDeleteEnrollment godoc
// @Summary      Delete an enrollment group
// @Description  Removes every adult sharing the target's group and all their minors, returning the freed tickets to the course.
// @Tags         enrollments
// @Produce      json
// @Param        enrollmentID  path      int  true  "Enrollment ID"
// @Success      200  {object}  response.EnrollmentDeleted
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID} [delete]
// @Security     BearerAuth
func (h *EnrollmentHandler) HandleDeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollmentID")
	if !ok {
		return
	}

	ticketsReturned, err := h.svc.DeleteEnrollment(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("enrollment", "id", id))
		case errors.Is(err, service.ErrCourseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("course", "enrollment_id", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteEnrollment -> h.svc.DeleteEnrollment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.EnrollmentDeleted{
		Message:         "enrollment deleted",
		TicketsReturned: ticketsReturned,
	})
}

func (h *EnrollmentHandler) toDomain(input request.EnrollmentRequest) (domain.Enrollment, []domain.Minor, []domain.Enrollment) {
	primary := domain.Enrollment{
		Fullname:          input.Fullname,
		Email:             input.Email,
		Gender:            input.Gender,
		Age:               input.Age,
		IsFirstActivity:   input.IsFirstActivity,
		IDAdmin:           input.IDAdmin,
		IDCourse:          input.IDCourse,
		GroupID:           input.GroupID,
		AcceptsNewsletter: input.AcceptsNewsletter,
	}

	minors := make([]domain.Minor, len(input.Minors))
	for i, m := range input.Minors {
		minors[i] = domain.Minor{
			ID:   m.ID,
			Name: m.Name,
			Age:  m.Age,
		}
	}

	adults := make([]domain.Enrollment, len(input.Adults))
	for i, a := range input.Adults {
		adults[i] = domain.Enrollment{
			ID:                a.ID,
			Fullname:          a.Fullname,
			Email:             a.Email,
			Gender:            a.Gender,
			Age:               a.Age,
			IsFirstActivity:   a.IsFirstActivity,
			IDAdmin:           a.IDAdmin,
			AcceptsNewsletter: a.AcceptsNewsletter,
		}
	}

	return primary, minors, adults
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v: %w", name, err)))
		return 0, false
	}

	return uint(raw), true
}
