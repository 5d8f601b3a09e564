package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-api/internal/service"
)

func (h *Handler) createStudent(c *gin.Context) {
	var req createStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.students.Create(c.Request.Context(), service.CreateStudentInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, studentToResponse(student))
}

func (h *Handler) listStudents(c *gin.Context) {
	students, err := h.students.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]StudentResponse, len(students))
	for i := range students {
		resp[i] = studentToResponse(&students[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getStudent(c *gin.Context) {
	student, err := h.students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, studentToResponse(student))
}

func (h *Handler) updateStudent(c *gin.Context) {
	var req updateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.students.Update(c.Request.Context(), c.Param("id"), service.UpdateStudentInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, studentToResponse(student))
}

func (h *Handler) deleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}

func (h *Handler) enrollStudentCourse(c *gin.Context) {
	var req enrollRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.students.EnrollCourse(c.Request.Context(), c.Param("id"), req.CourseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, studentToResponse(student))
}

func (h *Handler) removeStudentCourse(c *gin.Context) {
	var req enrollRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.students.RemoveCourse(c.Request.Context(), c.Param("id"), req.CourseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, studentToResponse(student))
}
