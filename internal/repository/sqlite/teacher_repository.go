package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"school-api/internal/domain"
	"school-api/internal/repository"
)

const createTeachersTables = `
CREATE TABLE IF NOT EXISTS teachers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS teacher_courses (
	teacher_id TEXT NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
	course_id TEXT NOT NULL,
	PRIMARY KEY (teacher_id, course_id)
);
`

type TeacherRepository struct {
	db *sql.DB
}

func NewTeacherRepository(db *sql.DB) repository.TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTeachersTables); err != nil {
		return fmt.Errorf("create teachers tables: %w", err)
	}
	return nil
}

func (r *TeacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	now := time.Now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO teachers (id, name, email, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		teacher.ID,
		teacher.Name,
		teacher.Email,
		teacher.CreatedAt,
		teacher.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert teacher: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}

func (r *TeacherRepository) Get(ctx context.Context, id string) (*domain.Teacher, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, created_at, updated_at
FROM teachers
WHERE id = ?`,
		id,
	)
	return scanTeacher(row)
}

func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, created_at, updated_at
FROM teachers
WHERE email = ?`,
		email,
	)
	return scanTeacher(row)
}

func (r *TeacherRepository) List(ctx context.Context) ([]domain.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, created_at, updated_at
FROM teachers
ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select teachers: %w", err)
	}
	defer rows.Close()

	teachers := []domain.Teacher{}
	for rows.Next() {
		var teacher domain.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.Email,
			&teacher.CreatedAt,
			&teacher.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}
	return teachers, nil
}

func (r *TeacherRepository) Update(ctx context.Context, teacher *domain.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE teachers
SET name = ?, email = ?, updated_at = ?
WHERE id = ?`,
		teacher.Name,
		teacher.Email,
		teacher.UpdatedAt,
		teacher.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update teacher: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update teacher: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update teacher rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete teacher rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TeacherRepository) AddCourse(ctx context.Context, teacherID, courseID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO teacher_courses (teacher_id, course_id)
VALUES (?, ?)`,
		teacherID,
		courseID,
	)
	if err != nil {
		return fmt.Errorf("add teacher course: %w", err)
	}
	return nil
}

func (r *TeacherRepository) RemoveCourse(ctx context.Context, teacherID, courseID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM teacher_courses
WHERE teacher_id = ? AND course_id = ?`,
		teacherID,
		courseID,
	)
	if err != nil {
		return fmt.Errorf("remove teacher course: %w", err)
	}
	return nil
}

func (r *TeacherRepository) ListCourseIDs(ctx context.Context, teacherID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT course_id
FROM teacher_courses
WHERE teacher_id = ?
ORDER BY course_id`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("select teacher courses: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan teacher course id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teacher courses: %w", err)
	}
	return ids, nil
}

func scanTeacher(row *sql.Row) (*domain.Teacher, error) {
	var teacher domain.Teacher
	if err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Email,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan teacher: %w", err)
	}
	return &teacher, nil
}
