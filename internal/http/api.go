package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"school-api/internal/domain"
	"school-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	students  service.StudentService
	teachers  service.TeacherService
	courses   service.CourseService
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	students service.StudentService,
	teachers service.TeacherService,
	courses service.CourseService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:     users,
		students:  students,
		teachers:  teachers,
		courses:   courses,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "School Management API is ready.",
			"version": "1.0.0",
			"status":  "Online",
		})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/profile", h.authenticate, h.getProfile)
	}

	courses := router.Group("/courses")
	{
		courses.GET("", h.listCourses)
		courses.GET("/:id", h.getCourse)
		courses.POST("", h.authenticate, h.authorize(domain.RoleAdmin), h.createCourse)
		courses.PUT("/:id", h.authenticate, h.authorize(domain.RoleUser, domain.RoleAdmin), h.updateCourse)
		courses.DELETE("/:id", h.authenticate, h.authorize(domain.RoleAdmin), h.deleteCourse)
	}

	students := router.Group("/students")
	{
		students.GET("", h.listStudents)
		students.GET("/:id", h.getStudent)
		students.POST("", h.authenticate, h.authorize(domain.RoleAdmin), h.createStudent)
		students.PUT("/:id", h.authenticate, h.updateStudent)
		students.PUT("/:id/enroll-course", h.authenticate, h.enrollStudentCourse)
		students.PUT("/:id/remove-course", h.authenticate, h.removeStudentCourse)
		students.DELETE("/:id", h.authenticate, h.authorize(domain.RoleAdmin), h.deleteStudent)
	}

	teachers := router.Group("/teachers")
	{
		teachers.GET("", h.listTeachers)
		teachers.GET("/:id", h.getTeacher)
		teachers.POST("", h.authenticate, h.authorize(domain.RoleAdmin), h.createTeacher)
		teachers.PUT("/:id", h.authenticate, h.updateTeacher)
		teachers.PUT("/:id/enroll-course", h.authenticate, h.enrollTeacherCourse)
		teachers.PUT("/:id/remove-course", h.authenticate, h.removeTeacherCourse)
		teachers.DELETE("/:id", h.authenticate, h.authorize(domain.RoleAdmin), h.deleteTeacher)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// respondError translates domain errors into their status and message;
// anything unclassified becomes a logged 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		c.JSON(appErr.Code, gin.H{"message": appErr.Message})
		return
	}
	h.logger.WithError(err).Error("unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}
