package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"school-api/internal/repository"
	"school-api/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	courses  repository.CourseRepository
	students repository.StudentRepository
	teachers repository.TeacherRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		courses:  sqlite.NewCourseRepository(db),
		students: sqlite.NewStudentRepository(db),
		teachers: sqlite.NewTeacherRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.courses.Init(ctx))
	require.NoError(t, repos.students.Init(ctx))
	require.NoError(t, repos.teachers.Init(ctx))

	return repos
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
