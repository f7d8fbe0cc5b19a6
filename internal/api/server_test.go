package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lacultural/enrollments-api/internal/config"
	"github.com/lacultural/enrollments-api/internal/repository/dao"
)

const testUserAgent = "enrollments-api-tests"

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, dao.InitTables(db))

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:   "test",
			Port:          "8080",
			JWTSigningKey: "test-signing-key",
		},
		Gin:  &config.GinConfig{Mode: "test"},
		SMTP: &config.SMTPConfig{},
	}

	return NewServer(conf, db), db
}

func seedAdmin(t *testing.T, db *gorm.DB, role string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	require.NoError(t, db.Create(&dao.Admin{
		Username: "gestora",
		Password: string(hash),
		Role:     role,
	}).Error)
}

func doRequest(s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", testUserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.Router.ServeHTTP(recorder, req)

	return recorder
}

func login(t *testing.T, s *Server) string {
	t.Helper()

	recorder := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "gestora",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func createCourse(t *testing.T, s *Server, token string, tickets int) uint {
	t.Helper()

	recorder := doRequest(s, http.MethodPost, "/api/v1/courses", token, map[string]interface{}{
		"title":       "Cerámica para principiantes",
		"description": "Taller de iniciación al torno",
		"date":        "03/10/2026",
		"link":        "https://lacultural.es/cursos/ceramica",
		"tickets":     tickets,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var course struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &course))

	return course.ID
}

func getCourseTickets(t *testing.T, s *Server, token string, courseID uint) int {
	t.Helper()

	recorder := doRequest(s, http.MethodGet, fmt.Sprintf("/api/v1/courses/%v", courseID), token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var course struct {
		Tickets int `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &course))

	return course.Tickets
}

func TestEnrollmentLifecycle(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "admin")
	token := login(t, s)

	courseID := createCourse(t, s, token, 5)

	// A leader with one minor and one secondary adult takes three tickets.
	recorder := doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "María García",
		"email":     "maria@example.com",
		"age":       34,
		"id_course": courseID,
		"minors":    []map[string]interface{}{{"name": "Lucía", "age": 8}},
		"adults": []map[string]interface{}{
			{"fullname": "Pedro García", "email": "pedro@example.com", "age": 36},
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Enrollment struct {
			ID      uint `json:"id"`
			GroupID uint `json:"group_id"`
		} `json:"enrollment"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, created.Enrollment.ID, created.Enrollment.GroupID)
	assert.Equal(t, 2, getCourseTickets(t, s, token, courseID))

	// A second group of three does not fit in the remaining two tickets, and
	// the failed attempt must not consume anything.
	recorder = doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "Carmen Ruiz",
		"email":     "carmen@example.com",
		"age":       41,
		"id_course": courseID,
		"minors": []map[string]interface{}{
			{"name": "Marta", "age": 5},
			{"name": "Hugo", "age": 7},
		},
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
	assert.Equal(t, 2, getCourseTickets(t, s, token, courseID))

	// The enrollment is visible with its minors and group adults.
	recorder = doRequest(s, http.MethodGet,
		fmt.Sprintf("/api/v1/enrollments/%v", created.Enrollment.ID), token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var fetched struct {
		Minors []struct {
			Name string `json:"name"`
		} `json:"minors"`
		Adults []struct {
			Fullname string `json:"fullname"`
		} `json:"adults"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	require.Len(t, fetched.Minors, 1)
	require.Len(t, fetched.Adults, 1)
	assert.Equal(t, "Pedro García", fetched.Adults[0].Fullname)

	// Deleting the group hands all three tickets back.
	recorder = doRequest(s, http.MethodDelete,
		fmt.Sprintf("/api/v1/enrollments/%v", created.Enrollment.ID), token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var deleted struct {
		TicketsReturned int `json:"ticketsReturned"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &deleted))
	assert.Equal(t, 3, deleted.TicketsReturned)
	assert.Equal(t, 5, getCourseTickets(t, s, token, courseID))
}

func TestCreateEnrollment_ValidationErrors(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "admin")
	token := login(t, s)

	courseID := createCourse(t, s, token, 5)

	// Underage leader.
	recorder := doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "Joven",
		"email":     "joven@example.com",
		"age":       13,
		"id_course": courseID,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Missing email.
	recorder = doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "Sin Correo",
		"age":       30,
		"id_course": courseID,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	assert.Equal(t, 5, getCourseTickets(t, s, token, courseID))
}

func TestCreateEnrollment_CourseNotFound(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "admin")
	token := login(t, s)

	recorder := doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "María García",
		"email":     "maria@example.com",
		"age":       34,
		"id_course": 999,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateEnrollment_AddsMinor(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "admin")
	token := login(t, s)

	courseID := createCourse(t, s, token, 5)

	recorder := doRequest(s, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"fullname":  "María García",
		"email":     "maria@example.com",
		"age":       34,
		"id_course": courseID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Enrollment struct {
			ID uint `json:"id"`
		} `json:"enrollment"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.Equal(t, 4, getCourseTickets(t, s, token, courseID))

	recorder = doRequest(s, http.MethodPut,
		fmt.Sprintf("/api/v1/enrollments/%v", created.Enrollment.ID), token, map[string]interface{}{
			"fullname":  "María García",
			"email":     "maria@example.com",
			"age":       34,
			"id_course": courseID,
			"minors":    []map[string]interface{}{{"name": "Lucía", "age": 8}},
		})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, 3, getCourseTickets(t, s, token, courseID))
}

func TestEnrollmentRoutes_RequireToken(t *testing.T) {
	s, _ := newTestServer(t)

	recorder := doRequest(s, http.MethodGet, "/api/v1/enrollments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRoutes_RequireSuperadmin(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "admin")
	token := login(t, s)

	recorder := doRequest(s, http.MethodGet, "/api/v1/admins", token, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAdminRoutes_SuperadminAccess(t *testing.T) {
	s, db := newTestServer(t)
	seedAdmin(t, db, "superadmin")
	token := login(t, s)

	recorder := doRequest(s, http.MethodPost, "/api/v1/admins", token, map[string]string{
		"username": "nueva",
		"password": "clave1234",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = doRequest(s, http.MethodGet, "/api/v1/admins", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var admins []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &admins))
	assert.Len(t, admins, 2)
}

func TestHealthcheck(t *testing.T) {
	s, _ := newTestServer(t)

	recorder := doRequest(s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
