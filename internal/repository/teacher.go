package repository

import (
	"context"

	"school-api/internal/domain"
)

// TeacherRepository defines persistence operations for Teacher entities,
// including the course-membership set.
type TeacherRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, teacher *domain.Teacher) error
	Get(ctx context.Context, id string) (*domain.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*domain.Teacher, error)
	List(ctx context.Context) ([]domain.Teacher, error)
	Update(ctx context.Context, teacher *domain.Teacher) error
	Delete(ctx context.Context, id string) error
	AddCourse(ctx context.Context, teacherID, courseID string) error
	RemoveCourse(ctx context.Context, teacherID, courseID string) error
	ListCourseIDs(ctx context.Context, teacherID string) ([]string, error)
}
