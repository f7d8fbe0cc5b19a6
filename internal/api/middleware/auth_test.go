package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacultural/enrollments-api/internal/pkg/jwthelper"
)

const signingKey = "test-signing-key"

func newRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handlers := append([]gin.HandlerFunc{NewAuthenticator(signingKey).VerifyJWT()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	router.GET("/protected", handlers...)

	return router
}

func request(token, userAgent string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

func TestVerifyJWT(t *testing.T) {
	router := newRouter()

	token, err := jwthelper.GenerateToken([]byte(signingKey), 1, "admin", "test-agent")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request(token, "test-agent"))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestVerifyJWT_MissingToken(t *testing.T) {
	router := newRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request("", "test-agent"))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestVerifyJWT_WrongUserAgent(t *testing.T) {
	router := newRouter()

	token, err := jwthelper.GenerateToken([]byte(signingKey), 1, "admin", "test-agent")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request(token, "another-agent"))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireSuperadmin(t *testing.T) {
	router := newRouter(RequireSuperadmin())

	adminToken, err := jwthelper.GenerateToken([]byte(signingKey), 1, "admin", "test-agent")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request(adminToken, "test-agent"))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	superToken, err := jwthelper.GenerateToken([]byte(signingKey), 1, "superadmin", "test-agent")
	require.NoError(t, err)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request(superToken, "test-agent"))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
