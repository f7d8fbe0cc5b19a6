package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCourseDAO_CRUD(t *testing.T) {
	db := newTestDB(t)
	courseDAO := NewCourseDAO(db)
	ctx := context.Background()

	created, err := courseDAO.Insert(ctx, Course{
		Title:   "Acuarela avanzada",
		Date:    time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Link:    "https://lacultural.es/cursos/acuarela",
		Tickets: 20,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := courseDAO.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acuarela avanzada", found.Title)
	assert.Equal(t, 20, found.Tickets)

	found.Tickets = 25
	updated, err := courseDAO.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Tickets)

	all, err := courseDAO.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, courseDAO.Delete(ctx, created.ID))

	_, err = courseDAO.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseDAO_UpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	courseDAO := NewCourseDAO(db)

	_, err := courseDAO.Update(context.Background(), Course{ID: 999, Title: "Nada"})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseDAO_DeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	courseDAO := NewCourseDAO(db)

	err := courseDAO.Delete(context.Background(), 999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestReserveTickets(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, 3)
	courseDAO := NewCourseDAO(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return courseDAO.ReserveTickets(tx, course.ID, 3)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, courseTickets(t, db, course.ID))

	err = db.Transaction(func(tx *gorm.DB) error {
		return courseDAO.ReserveTickets(tx, course.ID, 1)
	})
	require.ErrorIs(t, err, ErrInsufficientTickets)
	assert.Equal(t, 0, courseTickets(t, db, course.ID))
}

func TestReleaseTickets(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, 0)
	courseDAO := NewCourseDAO(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return courseDAO.ReleaseTickets(tx, course.ID, 4)
	})
	require.NoError(t, err)
	assert.Equal(t, 4, courseTickets(t, db, course.ID))
}

func TestReserveTickets_CourseNotFound(t *testing.T) {
	db := newTestDB(t)
	courseDAO := NewCourseDAO(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return courseDAO.ReserveTickets(tx, 999, 1)
	})
	require.ErrorIs(t, err, ErrCourseNotFound)
}
