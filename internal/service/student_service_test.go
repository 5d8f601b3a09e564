package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-api/internal/domain"
)

func newStudentFixtures(t *testing.T) (StudentService, CourseService) {
	repos := newTestRepos(t)
	return NewStudentService(repos.students, repos.courses), NewCourseService(repos.courses)
}

func TestStudentCreateDuplicateEmail(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	_, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	_, err = students.Create(ctx, CreateStudentInput{Name: "Jane Doe", Email: "john@school.com", Age: 21})
	require.Error(t, err)

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Error creating student", appErr.Message)
}

func TestStudentPartialUpdate(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	updated, err := students.Update(ctx, student.ID, UpdateStudentInput{Age: intPtr(21)})
	require.NoError(t, err)

	assert.Equal(t, 21, updated.Age)
	assert.Equal(t, "John Doe", updated.Name, "omitted fields keep prior values")
	assert.Equal(t, "john@school.com", updated.Email)
}

func TestStudentUpdateEmailConflict(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	_, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)
	second, err := students.Create(ctx, CreateStudentInput{Name: "Jane Doe", Email: "jane@school.com", Age: 21})
	require.NoError(t, err)

	_, err = students.Update(ctx, second.ID, UpdateStudentInput{Email: strPtr("john@school.com")})
	require.Error(t, err)

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Email is already in use", appErr.Message)
}

func TestStudentUpdateOwnEmailIsNoop(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	updated, err := students.Update(ctx, student.ID, UpdateStudentInput{Email: strPtr("john@school.com")})
	require.NoError(t, err)
	assert.Equal(t, "john@school.com", updated.Email)
}

func TestStudentEnrollIsIdempotent(t *testing.T) {
	students, courses := newStudentFixtures(t)
	ctx := context.Background()

	course, err := courses.Create(ctx, CreateCourseInput{Title: "Mathematics", Code: "MATH101", Credits: 3})
	require.NoError(t, err)
	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	first, err := students.EnrollCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, first.CourseIDs, 1)

	second, err := students.EnrollCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, second.CourseIDs, 1, "re-enrolling must not duplicate membership")
	assert.Len(t, second.Courses, 1)
}

func TestStudentEnrollMissingCourse(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	_, err = students.EnrollCourse(ctx, student.ID, "missing-course")
	require.Error(t, err)

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Cannot enroll: Course not found", appErr.Message)
}

func TestStudentEnrollMissingStudent(t *testing.T) {
	students, courses := newStudentFixtures(t)
	ctx := context.Background()

	course, err := courses.Create(ctx, CreateCourseInput{Title: "Mathematics", Code: "MATH101", Credits: 3})
	require.NoError(t, err)

	_, err = students.EnrollCourse(ctx, "missing-student", course.ID)
	require.Error(t, err)

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Student not found", appErr.Message)
}

func TestStudentRemoveCourseNonMemberIsNoop(t *testing.T) {
	students, courses := newStudentFixtures(t)
	ctx := context.Background()

	course, err := courses.Create(ctx, CreateCourseInput{Title: "Mathematics", Code: "MATH101", Credits: 3})
	require.NoError(t, err)
	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	got, err := students.RemoveCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CourseIDs)
}

func TestStudentRemoveCourse(t *testing.T) {
	students, courses := newStudentFixtures(t)
	ctx := context.Background()

	course, err := courses.Create(ctx, CreateCourseInput{Title: "Mathematics", Code: "MATH101", Credits: 3})
	require.NoError(t, err)
	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	_, err = students.EnrollCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)

	got, err := students.RemoveCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CourseIDs)
}

func TestCourseDeleteDoesNotCascade(t *testing.T) {
	students, courses := newStudentFixtures(t)
	ctx := context.Background()

	course, err := courses.Create(ctx, CreateCourseInput{Title: "Mathematics", Code: "MATH101", Credits: 3})
	require.NoError(t, err)
	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	_, err = students.EnrollCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, courses.Delete(ctx, course.ID))

	// the student survives; the dangling id stays in the set but no
	// longer resolves to a course document
	got, err := students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Contains(t, got.CourseIDs, course.ID)
	assert.Empty(t, got.Courses)
}

func TestStudentDelete(t *testing.T) {
	students, _ := newStudentFixtures(t)
	ctx := context.Background()

	student, err := students.Create(ctx, CreateStudentInput{Name: "John Doe", Email: "john@school.com", Age: 20})
	require.NoError(t, err)

	require.NoError(t, students.Delete(ctx, student.ID))

	_, err = students.GetByID(ctx, student.ID)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	err = students.Delete(ctx, student.ID)
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
