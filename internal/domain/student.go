package domain

import "time"

// Student is enrolled in zero or more courses.
//
// CourseIDs is the raw membership set as stored; Courses holds the
// resolved course documents populated on read. An id that no longer
// resolves (its course was deleted) stays in CourseIDs but is absent
// from Courses.
type Student struct {
	ID        string
	Name      string
	Email     string
	Age       int
	CourseIDs []string
	Courses   []Course
	CreatedAt time.Time
	UpdatedAt time.Time
}
