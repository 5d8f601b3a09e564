package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-api/internal/service"
)

func (h *Handler) createCourse(c *gin.Context) {
	var req createCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courses.Create(c.Request.Context(), service.CreateCourseInput{
		Title:   req.Title,
		Code:    req.Code,
		Credits: req.Credits,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, courseToResponse(*course))
}

func (h *Handler) listCourses(c *gin.Context) {
	courses, err := h.courses.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, coursesToResponse(courses))
}

func (h *Handler) getCourse(c *gin.Context) {
	course, err := h.courses.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, courseToResponse(*course))
}

func (h *Handler) updateCourse(c *gin.Context) {
	var req updateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), service.UpdateCourseInput{
		Title:   req.Title,
		Code:    req.Code,
		Credits: req.Credits,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, courseToResponse(*course))
}

func (h *Handler) deleteCourse(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}
