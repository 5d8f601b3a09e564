package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-api/internal/domain"
	"school-api/internal/repository"
)

const createCoursesTable = `
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	code TEXT NOT NULL UNIQUE,
	credits INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) repository.CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCoursesTable); err != nil {
		return fmt.Errorf("create courses table: %w", err)
	}
	return nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO courses (id, title, code, credits, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.Title,
		course.Code,
		course.Credits,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert course: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) Get(ctx context.Context, id string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, code, credits, created_at, updated_at
FROM courses
WHERE id = ?`,
		id,
	)
	return scanCourse(row)
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, code, credits, created_at, updated_at
FROM courses
WHERE code = ?`,
		code,
	)
	return scanCourse(row)
}

func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, title, code, credits, created_at, updated_at
FROM courses
WHERE id IN (%s)
ORDER BY created_at`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("select courses by ids: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, code, credits, created_at, updated_at
FROM courses
ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE courses
SET title = ?, code = ?, credits = ?, updated_at = ?
WHERE id = ?`,
		course.Title,
		course.Code,
		course.Credits,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update course: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanCourse(row *sql.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Code,
		&course.Credits,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}
	return &course, nil
}

func collectCourses(rows *sql.Rows) ([]domain.Course, error) {
	courses := []domain.Course{}
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Code,
			&course.Credits,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}
