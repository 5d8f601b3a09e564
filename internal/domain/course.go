package domain

import "time"

// Course is a unit of teaching referenced by students and teachers.
type Course struct {
	ID        string
	Title     string
	Code      string
	Credits   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
