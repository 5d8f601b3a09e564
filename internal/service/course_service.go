package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"school-api/internal/domain"
	"school-api/internal/repository"
)

// CreateCourseInput carries validated course creation fields.
type CreateCourseInput struct {
	Title   string
	Code    string
	Credits int
}

// UpdateCourseInput carries a partial update; nil fields are left
// unchanged.
type UpdateCourseInput struct {
	Title   *string
	Code    *string
	Credits *int
}

// CourseService coordinates course CRUD operations.
type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	Update(ctx context.Context, id string, input UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	courses repository.CourseRepository
}

func NewCourseService(courses repository.CourseRepository) CourseService {
	return &courseService{courses: courses}
}

func (s *courseService) Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error) {
	course := &domain.Course{
		ID:      uuid.NewString(),
		Title:   input.Title,
		Code:    input.Code,
		Credits: input.Credits,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.BadRequest("Error creating course")
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetAll(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *courseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Course not found")
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id string, input UpdateCourseInput) (*domain.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Course not found")
		}
		return nil, err
	}

	if input.Code != nil && *input.Code != course.Code {
		existing, err := s.courses.GetByCode(ctx, *input.Code)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Conflict("Code is already in use")
		}
		course.Code = *input.Code
	}
	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Credits != nil {
		course.Credits = *input.Credits
	}

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Code is already in use")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Course not found")
		}
		return nil, err
	}
	return course, nil
}

// Delete removes only the course row. Membership rows referencing the
// course are left in place; see student/teacher population behavior.
func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Course not found")
		}
		return err
	}
	return nil
}
