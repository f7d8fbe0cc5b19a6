package dao

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDockerPostgres spins up a throwaway postgres container. The test is
// skipped when no docker daemon is reachable.
func openDockerPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping, could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("skipping, docker is not running: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=enrollments_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=secret dbname=enrollments_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

// Two groups race for the last tickets of a course. The row lock taken by
// ReserveTickets must let exactly one of them through.
func TestCreateGroup_ConcurrentReservations(t *testing.T) {
	db := openDockerPostgres(t)

	course := Course{
		Title:   "Grabado en linóleo",
		Date:    time.Now().Add(7 * 24 * time.Hour),
		Tickets: 3,
	}
	require.NoError(t, db.Create(&course).Error)

	enrollmentDAO := NewEnrollmentDAO(db, NewCourseDAO(db))

	newGroup := func(email string) (Enrollment, []Minor) {
		return Enrollment{
			Fullname: "Líder de grupo",
			Email:    email,
			Age:      30,
			IDCourse: course.ID,
		}, []Minor{{Name: "Peque", Age: 7}}
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			primary, minors := newGroup(fmt.Sprintf("lider%v@example.com", i))
			_, results[i] = enrollmentDAO.CreateGroup(context.Background(), primary, minors, nil)
		}(i)
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientTickets):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	var remaining Course
	require.NoError(t, db.First(&remaining, course.ID).Error)
	assert.Equal(t, 1, remaining.Tickets)

	var enrollmentCount int64
	require.NoError(t, db.Model(&Enrollment{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, enrollmentCount)
}
