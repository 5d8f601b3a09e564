package repository

import (
	"context"

	"school-api/internal/domain"
)

// StudentRepository defines persistence operations for Student entities,
// including the course-membership set.
type StudentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, student *domain.Student) error
	Get(ctx context.Context, id string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id string) error
	// AddCourse adds courseID to the student's course set. Adding an id
	// already present is a no-op.
	AddCourse(ctx context.Context, studentID, courseID string) error
	// RemoveCourse removes courseID from the student's course set.
	// Removing an id not present is a no-op.
	RemoveCourse(ctx context.Context, studentID, courseID string) error
	ListCourseIDs(ctx context.Context, studentID string) ([]string, error)
}
