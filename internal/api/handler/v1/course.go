package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lacultural/enrollments-api/internal/api/handler/v1/request"
	"github.com/lacultural/enrollments-api/internal/api/handler/v1/response"
	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/service"
)

// Course dates come in as DD/MM/YYYY.
const courseDateLayout = "02/01/2006"

type CourseService interface {
	CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error)
	GetCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id uint) (domain.Course, error)
	UpdateCourse(ctx context.Context, course domain.Course) (domain.Course, error)
	DeleteCourse(ctx context.Context, id uint) error
}

type CourseHandler struct {
	svc CourseService
}

func NewCourseHandler(svc CourseService) *CourseHandler {
	return &CourseHandler{
		svc: svc,
	}
}

// HandleGetCourses godoc
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /courses [get]
// @Security     BearerAuth
func (h *CourseHandler) HandleGetCourses(ctx *gin.Context) {
	courses, err := h.svc.GetCourses(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCourses -> h.svc.GetCourses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// HandleGetCourse godoc
// @Summary      Get one course
// @Tags         courses
// @Produce      json
// @Param        courseID  path      int  true  "Course ID"
// @Success      200  {object}  domain.Course
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /courses/{courseID} [get]
// @Security     BearerAuth
func (h *CourseHandler) HandleGetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "courseID")
	if !ok {
		return
	}

	course, err := h.svc.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("course", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetCourse -> h.svc.GetCourse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// HandleCreateCourse godoc
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateCourseRequest  true  "Course"
// @Success      201    {object}  domain.Course
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /courses [post]
// @Security     BearerAuth
func (h *CourseHandler) HandleCreateCourse(ctx *gin.Context) {
	var input request.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(courseDateLayout, input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date, expected DD/MM/YYYY: %w", err)))
		return
	}

	course, err := h.svc.CreateCourse(ctx.Request.Context(), domain.Course{
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Link:        input.Link,
		Tickets:     input.Tickets,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCourse -> h.svc.CreateCourse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, course)
}

// HandleUpdateCourse godoc
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        courseID  path      int                          true  "Course ID"
// @Param        input     body      request.UpdateCourseRequest  true  "Course"
// @Success      200  {object}  domain.Course
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /courses/{courseID} [put]
// @Security     BearerAuth
func (h *CourseHandler) HandleUpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "courseID")
	if !ok {
		return
	}

	var input request.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(courseDateLayout, input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date, expected DD/MM/YYYY: %w", err)))
		return
	}

	course, err := h.svc.UpdateCourse(ctx.Request.Context(), domain.Course{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Link:        input.Link,
		Tickets:     input.Tickets,
	})
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("course", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCourse -> h.svc.UpdateCourse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// HandleDeleteCourse godoc
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Param        courseID  path      int  true  "Course ID"
// @Success      200  {object}  response.Message
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /courses/{courseID} [delete]
// @Security     BearerAuth
func (h *CourseHandler) HandleDeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "courseID")
	if !ok {
		return
	}

	if err := h.svc.DeleteCourse(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("course", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteCourse -> h.svc.DeleteCourse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "course deleted"})
}
