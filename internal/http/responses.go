package http

import (
	"time"

	"school-api/internal/domain"
)

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CourseResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Code      string `json:"code"`
	Credits   int    `json:"credits"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type StudentResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Age       int              `json:"age"`
	CourseIDs []string         `json:"courseIds"`
	Courses   []CourseResponse `json:"courses"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

type TeacherResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	CourseIDs []string         `json:"courseIds"`
	Courses   []CourseResponse `json:"courses"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func courseToResponse(course domain.Course) CourseResponse {
	return CourseResponse{
		ID:        course.ID,
		Title:     course.Title,
		Code:      course.Code,
		Credits:   course.Credits,
		CreatedAt: course.CreatedAt.Format(time.RFC3339),
		UpdatedAt: course.UpdatedAt.Format(time.RFC3339),
	}
}

func coursesToResponse(courses []domain.Course) []CourseResponse {
	out := make([]CourseResponse, len(courses))
	for i := range courses {
		out[i] = courseToResponse(courses[i])
	}
	return out
}

func studentToResponse(student *domain.Student) StudentResponse {
	courseIDs := student.CourseIDs
	if courseIDs == nil {
		courseIDs = []string{}
	}
	return StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Age:       student.Age,
		CourseIDs: courseIDs,
		Courses:   coursesToResponse(student.Courses),
		CreatedAt: student.CreatedAt.Format(time.RFC3339),
		UpdatedAt: student.UpdatedAt.Format(time.RFC3339),
	}
}

func teacherToResponse(teacher *domain.Teacher) TeacherResponse {
	courseIDs := teacher.CourseIDs
	if courseIDs == nil {
		courseIDs = []string{}
	}
	return TeacherResponse{
		ID:        teacher.ID,
		Name:      teacher.Name,
		Email:     teacher.Email,
		CourseIDs: courseIDs,
		Courses:   coursesToResponse(teacher.Courses),
		CreatedAt: teacher.CreatedAt.Format(time.RFC3339),
		UpdatedAt: teacher.UpdatedAt.Format(time.RFC3339),
	}
}
