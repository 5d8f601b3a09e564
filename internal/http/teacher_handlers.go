package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-api/internal/service"
)

func (h *Handler) createTeacher(c *gin.Context) {
	var req createTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := h.teachers.Create(c.Request.Context(), service.CreateTeacherInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teacherToResponse(teacher))
}

func (h *Handler) listTeachers(c *gin.Context) {
	teachers, err := h.teachers.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]TeacherResponse, len(teachers))
	for i := range teachers {
		resp[i] = teacherToResponse(&teachers[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTeacher(c *gin.Context) {
	teacher, err := h.teachers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacherToResponse(teacher))
}

func (h *Handler) updateTeacher(c *gin.Context) {
	var req updateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := h.teachers.Update(c.Request.Context(), c.Param("id"), service.UpdateTeacherInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacherToResponse(teacher))
}

func (h *Handler) deleteTeacher(c *gin.Context) {
	if err := h.teachers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted"})
}

func (h *Handler) enrollTeacherCourse(c *gin.Context) {
	var req enrollRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := h.teachers.EnrollCourse(c.Request.Context(), c.Param("id"), req.CourseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacherToResponse(teacher))
}

func (h *Handler) removeTeacherCourse(c *gin.Context) {
	var req enrollRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := h.teachers.RemoveCourse(c.Request.Context(), c.Param("id"), req.CourseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacherToResponse(teacher))
}
