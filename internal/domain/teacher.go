package domain

import "time"

// Teacher teaches zero or more courses. Course membership follows the
// same set semantics as Student.
type Teacher struct {
	ID        string
	Name      string
	Email     string
	CourseIDs []string
	Courses   []Course
	CreatedAt time.Time
	UpdatedAt time.Time
}
