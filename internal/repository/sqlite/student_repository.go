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

// student_courses deliberately carries no foreign key on course_id:
// deleting a course must not touch (or be blocked by) membership rows,
// so dangling course ids can remain in an entity's set.
const createStudentsTables = `
CREATE TABLE IF NOT EXISTS students (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	age INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS student_courses (
	student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	course_id TEXT NOT NULL,
	PRIMARY KEY (student_id, course_id)
);
`

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) repository.StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createStudentsTables); err != nil {
		return fmt.Errorf("create students tables: %w", err)
	}
	return nil
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO students (id, name, email, age, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		student.ID,
		student.Name,
		student.Email,
		student.Age,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert student: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (r *StudentRepository) Get(ctx context.Context, id string) (*domain.Student, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, age, created_at, updated_at
FROM students
WHERE id = ?`,
		id,
	)
	return scanStudent(row)
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, age, created_at, updated_at
FROM students
WHERE email = ?`,
		email,
	)
	return scanStudent(row)
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, age, created_at, updated_at
FROM students
ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select students: %w", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) error {
	student.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE students
SET name = ?, email = ?, age = ?, updated_at = ?
WHERE id = ?`,
		student.Name,
		student.Email,
		student.Age,
		student.UpdatedAt,
		student.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update student: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update student rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddCourse is a single atomic set-add; INSERT OR IGNORE makes repeat
// enrollment a no-op even under concurrent requests.
func (r *StudentRepository) AddCourse(ctx context.Context, studentID, courseID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO student_courses (student_id, course_id)
VALUES (?, ?)`,
		studentID,
		courseID,
	)
	if err != nil {
		return fmt.Errorf("add student course: %w", err)
	}
	return nil
}

func (r *StudentRepository) RemoveCourse(ctx context.Context, studentID, courseID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM student_courses
WHERE student_id = ? AND course_id = ?`,
		studentID,
		courseID,
	)
	if err != nil {
		return fmt.Errorf("remove student course: %w", err)
	}
	return nil
}

func (r *StudentRepository) ListCourseIDs(ctx context.Context, studentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT course_id
FROM student_courses
WHERE student_id = ?
ORDER BY course_id`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("select student courses: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan student course id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate student courses: %w", err)
	}
	return ids, nil
}

func scanStudent(row *sql.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}
	return &student, nil
}
