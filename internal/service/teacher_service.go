package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"school-api/internal/domain"
	"school-api/internal/repository"
)

// CreateTeacherInput carries validated teacher creation fields.
type CreateTeacherInput struct {
	Name  string
	Email string
}

// UpdateTeacherInput carries a partial update; nil fields are left
// unchanged.
type UpdateTeacherInput struct {
	Name  *string
	Email *string
}

// TeacherService coordinates teacher CRUD and course membership.
type TeacherService interface {
	Create(ctx context.Context, input CreateTeacherInput) (*domain.Teacher, error)
	GetAll(ctx context.Context) ([]domain.Teacher, error)
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
	Update(ctx context.Context, id string, input UpdateTeacherInput) (*domain.Teacher, error)
	Delete(ctx context.Context, id string) error
	EnrollCourse(ctx context.Context, teacherID, courseID string) (*domain.Teacher, error)
	RemoveCourse(ctx context.Context, teacherID, courseID string) (*domain.Teacher, error)
}

type teacherService struct {
	teachers repository.TeacherRepository
	courses  repository.CourseRepository
}

func NewTeacherService(teachers repository.TeacherRepository, courses repository.CourseRepository) TeacherService {
	return &teacherService{teachers: teachers, courses: courses}
}

func (s *teacherService) Create(ctx context.Context, input CreateTeacherInput) (*domain.Teacher, error) {
	teacher := &domain.Teacher{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.BadRequest("Error creating teacher")
		}
		return nil, err
	}

	teacher.CourseIDs = []string{}
	teacher.Courses = []domain.Course{}
	return teacher, nil
}

func (s *teacherService) GetAll(ctx context.Context) ([]domain.Teacher, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teachers {
		if err := s.populate(ctx, &teachers[i]); err != nil {
			return nil, err
		}
	}
	return teachers, nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	teacher, err := s.teachers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Teacher not found")
		}
		return nil, err
	}
	if err := s.populate(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id string, input UpdateTeacherInput) (*domain.Teacher, error) {
	teacher, err := s.teachers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Teacher not found")
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != teacher.Email {
		existing, err := s.teachers.GetByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Conflict("Email is already in use")
		}
		teacher.Email = *input.Email
	}
	if input.Name != nil {
		teacher.Name = *input.Name
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Email is already in use")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Teacher not found")
		}
		return nil, err
	}

	if err := s.populate(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if err := s.teachers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Teacher not found")
		}
		return err
	}
	return nil
}

func (s *teacherService) EnrollCourse(ctx context.Context, teacherID, courseID string) (*domain.Teacher, error) {
	if _, err := s.courses.Get(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Cannot enroll: Course not found")
		}
		return nil, err
	}

	teacher, err := s.teachers.Get(ctx, teacherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Teacher not found")
		}
		return nil, err
	}

	if err := s.teachers.AddCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	if err := s.populate(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) RemoveCourse(ctx context.Context, teacherID, courseID string) (*domain.Teacher, error) {
	teacher, err := s.teachers.Get(ctx, teacherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Teacher not found")
		}
		return nil, err
	}

	if err := s.teachers.RemoveCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	if err := s.populate(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) populate(ctx context.Context, teacher *domain.Teacher) error {
	ids, err := s.teachers.ListCourseIDs(ctx, teacher.ID)
	if err != nil {
		return err
	}
	courses, err := s.courses.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	teacher.CourseIDs = ids
	teacher.Courses = courses
	return nil
}
