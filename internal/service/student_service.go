package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"school-api/internal/domain"
	"school-api/internal/repository"
)

// CreateStudentInput carries validated student creation fields.
type CreateStudentInput struct {
	Name  string
	Email string
	Age   int
}

// UpdateStudentInput carries a partial update; nil fields are left
// unchanged.
type UpdateStudentInput struct {
	Name  *string
	Email *string
	Age   *int
}

// StudentService coordinates student CRUD and course membership.
type StudentService interface {
	Create(ctx context.Context, input CreateStudentInput) (*domain.Student, error)
	GetAll(ctx context.Context) ([]domain.Student, error)
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	Update(ctx context.Context, id string, input UpdateStudentInput) (*domain.Student, error)
	Delete(ctx context.Context, id string) error
	EnrollCourse(ctx context.Context, studentID, courseID string) (*domain.Student, error)
	RemoveCourse(ctx context.Context, studentID, courseID string) (*domain.Student, error)
}

type studentService struct {
	students repository.StudentRepository
	courses  repository.CourseRepository
}

func NewStudentService(students repository.StudentRepository, courses repository.CourseRepository) StudentService {
	return &studentService{students: students, courses: courses}
}

func (s *studentService) Create(ctx context.Context, input CreateStudentInput) (*domain.Student, error) {
	student := &domain.Student{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: input.Email,
		Age:   input.Age,
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.BadRequest("Error creating student")
		}
		return nil, err
	}

	student.CourseIDs = []string{}
	student.Courses = []domain.Course{}
	return student, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]domain.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if err := s.populate(ctx, &students[i]); err != nil {
			return nil, err
		}
	}
	return students, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Student not found")
		}
		return nil, err
	}
	if err := s.populate(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id string, input UpdateStudentInput) (*domain.Student, error) {
	student, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Student not found")
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != student.Email {
		existing, err := s.students.GetByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Conflict("Email is already in use")
		}
		student.Email = *input.Email
	}
	if input.Name != nil {
		student.Name = *input.Name
	}
	if input.Age != nil {
		student.Age = *input.Age
	}

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Email is already in use")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Student not found")
		}
		return nil, err
	}

	if err := s.populate(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Student not found")
		}
		return err
	}
	return nil
}

func (s *studentService) EnrollCourse(ctx context.Context, studentID, courseID string) (*domain.Student, error) {
	if _, err := s.courses.Get(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Cannot enroll: Course not found")
		}
		return nil, err
	}

	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Student not found")
		}
		return nil, err
	}

	if err := s.students.AddCourse(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	if err := s.populate(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RemoveCourse tolerates removing a course id that is not a member;
// the operation is a no-op success.
func (s *studentService) RemoveCourse(ctx context.Context, studentID, courseID string) (*domain.Student, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Student not found")
		}
		return nil, err
	}

	if err := s.students.RemoveCourse(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	if err := s.populate(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// populate resolves the student's course id set against the courses
// collection. Dangling ids stay in CourseIDs but yield no Course.
func (s *studentService) populate(ctx context.Context, student *domain.Student) error {
	ids, err := s.students.ListCourseIDs(ctx, student.ID)
	if err != nil {
		return err
	}
	courses, err := s.courses.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	student.CourseIDs = ids
	student.Courses = courses
	return nil
}
