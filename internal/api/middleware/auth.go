package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lacultural/enrollments-api/internal/api/handler/v1/response"
	"github.com/lacultural/enrollments-api/internal/domain"
	"github.com/lacultural/enrollments-api/internal/pkg/jwthelper"
)

const (
	// ClaimsKeyAdminID and ClaimsKeyAdminRole are the gin context keys the
	// authenticator populates for downstream handlers.
	ClaimsKeyAdminID   = "claims_admin_id"
	ClaimsKeyAdminRole = "claims_admin_role"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		segments := strings.Split(header, " ")
		if len(segments) != 2 || segments[0] != "Bearer" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing or malformed token")))
			ctx.Abort()
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, segments[1])
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid token")))
			ctx.Abort()
			return
		}

		// A token replayed from another client is refused.
		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid token")))
			ctx.Abort()
			return
		}

		ctx.Set(ClaimsKeyAdminID, claims.AdminID)
		ctx.Set(ClaimsKeyAdminRole, claims.Role)
		ctx.Next()
	}
}

// RequireSuperadmin guards the admin management routes; it assumes VerifyJWT
// already ran on the group.
func RequireSuperadmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ClaimsKeyAdminRole)
		if role != domain.RoleSuperadmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("superadmin role required")))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
