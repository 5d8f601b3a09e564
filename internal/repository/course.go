package repository

import (
	"context"

	"school-api/internal/domain"
)

// CourseRepository defines persistence operations for Course entities.
type CourseRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, course *domain.Course) error
	Get(ctx context.Context, id string) (*domain.Course, error)
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	// GetByIDs resolves a set of course ids; ids that do not resolve are
	// silently skipped.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
}
