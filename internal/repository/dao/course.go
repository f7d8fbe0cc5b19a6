package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
)

type Course struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Date        time.Time
	Link        string
	Tickets     int `gorm:"not null;default:0"`

	Enrollments []Enrollment `gorm:"foreignKey:IDCourse"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CourseDAO struct {
	db *gorm.DB
}

func NewCourseDAO(db *gorm.DB) *CourseDAO {
	return &CourseDAO{
		db: db,
	}
}

func (d *CourseDAO) Insert(ctx context.Context, course Course) (Course, error) {
	result := d.db.WithContext(ctx).Create(&course)
	if result.Error != nil {
		return Course{}, result.Error
	}

	return course, nil
}

func (d *CourseDAO) FindAll(ctx context.Context) ([]Course, error) {
	var courses []Course

	result := d.db.WithContext(ctx).Order("date").Find(&courses)
	if result.Error != nil {
		return nil, result.Error
	}

	return courses, nil
}

func (d *CourseDAO) FindByID(ctx context.Context, id uint) (Course, error) {
	var course Course

	result := d.db.WithContext(ctx).First(&course, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Course{}, ErrCourseNotFound
		}

		return Course{}, result.Error
	}

	return course, nil
}

func (d *CourseDAO) Update(ctx context.Context, course Course) (Course, error) {
	result := d.db.WithContext(ctx).Model(&Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"title":       course.Title,
		"description": course.Description,
		"date":        course.Date,
		"link":        course.Link,
		"tickets":     course.Tickets,
	})
	if result.Error != nil {
		return Course{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Course{}, ErrCourseNotFound
	}

	return d.FindByID(ctx, course.ID)
}

func (d *CourseDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// ReserveTickets takes count tickets off a course inside the caller's
// transaction. The course row is read under a row lock so that two concurrent
// registrations cannot both see the same remaining count and over-sell.
func (d *CourseDAO) ReserveTickets(tx *gorm.DB, courseID uint, count int) error {
	course, err := d.lockForUpdate(tx, courseID)
	if err != nil {
		return err
	}

	if course.Tickets < count {
		return ErrInsufficientTickets
	}

	return tx.Model(&Course{}).Where("id = ?", courseID).
		Update("tickets", gorm.Expr("tickets - ?", count)).Error
}

// ReleaseTickets gives count tickets back to a course inside the caller's
// transaction. There is no upper bound: a course resized downwards after
// registrations may end up above its original capacity.
func (d *CourseDAO) ReleaseTickets(tx *gorm.DB, courseID uint, count int) error {
	if _, err := d.lockForUpdate(tx, courseID); err != nil {
		return err
	}

	return tx.Model(&Course{}).Where("id = ?", courseID).
		Update("tickets", gorm.Expr("tickets + ?", count)).Error
}

func (d *CourseDAO) lockForUpdate(tx *gorm.DB, id uint) (Course, error) {
	var course Course

	q := tx
	// sqlite (the test dialect) has no SELECT ... FOR UPDATE; its writes are
	// serialized by the engine itself.
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := q.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Course{}, ErrCourseNotFound
		}

		return Course{}, err
	}

	return course, nil
}
