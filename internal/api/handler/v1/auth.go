package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lacultural/enrollments-api/internal/api/handler/v1/request"
	"github.com/lacultural/enrollments-api/internal/api/handler/v1/response"
	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/pkg/jwthelper"
	"github.com/lacultural/enrollments-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Admin, error)
	GetAdmin(ctx context.Context, id uint) (domain.Admin, error)
	GetAdmins(ctx context.Context) ([]domain.Admin, error)
	CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	UpdateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	DeleteAdmin(ctx context.Context, id uint) error
}

type AuthHandler struct {
	svc           AuthService
	jwtSigningKey []byte
}

func NewAuthHandler(svc AuthService, jwtSigningKey string) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		jwtSigningKey: []byte(jwtSigningKey),
	}
}

// HandleLogin godoc
// @Summary      Authenticate an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      request.LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Login
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var input request.LoginRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials())
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken(h.jwtSigningKey, admin.ID, admin.Role, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Login{
		Token: token,
		Admin: admin,
	})
}

// HandleGetAdmins godoc
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Success      200  {array}   domain.Admin
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admins [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleGetAdmins(ctx *gin.Context) {
	admins, err := h.svc.GetAdmins(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAdmins -> h.svc.GetAdmins -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, admins)
}

// HandleGetAdmin godoc
// @Summary      Get one admin
// @Tags         admins
// @Produce      json
// @Param        adminID  path      int  true  "Admin ID"
// @Success      200  {object}  domain.Admin
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admins/{adminID} [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleGetAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "adminID")
	if !ok {
		return
	}

	admin, err := h.svc.GetAdmin(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("admin", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetAdmin -> h.svc.GetAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, admin)
}

// HandleCreateAdmin godoc
// @Summary      Create an admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateAdminRequest  true  "Admin"
// @Success      201    {object}  domain.Admin
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admins [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleCreateAdmin(ctx *gin.Context) {
	var input request.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	admin, err := h.svc.CreateAdmin(ctx.Request.Context(), domain.Admin{
		Username: input.Username,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrAdminUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateAdmin -> h.svc.CreateAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, admin)
}

// HandleUpdateAdmin godoc
// @Summary      Update an admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        adminID  path      int                         true  "Admin ID"
// @Param        input    body      request.UpdateAdminRequest  true  "Admin"
// @Success      200  {object}  domain.Admin
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admins/{adminID} [put]
// @Security     BearerAuth
func (h *AuthHandler) HandleUpdateAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "adminID")
	if !ok {
		return
	}

	var input request.UpdateAdminRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	admin, err := h.svc.UpdateAdmin(ctx.Request.Context(), domain.Admin{
		ID:       id,
		Username: input.Username,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.RenderErr(ctx, response.ErrNotFound("admin", "id", id))
		case errors.Is(err, service.ErrAdminUsernameExists):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateAdmin -> h.svc.UpdateAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, admin)
}

// HandleDeleteAdmin godoc
// @Summary      Delete an admin
// @Tags         admins
// @Produce      json
// @Param        adminID  path      int  true  "Admin ID"
// @Success      200  {object}  response.Message
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admins/{adminID} [delete]
// @Security     BearerAuth
func (h *AuthHandler) HandleDeleteAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "adminID")
	if !ok {
		return
	}

	if err := h.svc.DeleteAdmin(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("admin", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAdmin -> h.svc.DeleteAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "admin deleted"})
}
