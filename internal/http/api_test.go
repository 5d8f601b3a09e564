package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-api/internal/repository/sqlite"
	"school-api/internal/service"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	courseRepo := sqlite.NewCourseRepository(db)
	studentRepo := sqlite.NewStudentRepository(db)
	teacherRepo := sqlite.NewTeacherRepository(db)

	ctx := context.Background()
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, courseRepo.Init(ctx))
	require.NoError(t, studentRepo.Init(ctx))
	require.NoError(t, teacherRepo.Init(ctx))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(
		service.NewUserService(userRepo),
		service.NewStudentService(studentRepo, courseRepo),
		service.NewTeacherService(teacherRepo, courseRepo),
		service.NewCourseService(courseRepo),
		testSecret,
		time.Hour,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, router *gin.Engine, username, email, role string) string {
	t.Helper()

	payload := gin.H{"username": username, "email": email, "password": "password123"}
	if role != "" {
		payload["role"] = role
	}

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginProfileRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"username": "newuser",
		"email":    "newuser@test.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "user", user["role"], "role defaults to user")
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "newuser@test.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	rec = doRequest(t, router, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "newuser@test.com", profile["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "login", "login@test.com", "")

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "login@test.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTamperedTokenRejected(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user", "user@test.com", "")

	tampered := token[:len(token)-4] + "AAAA"
	rec := doRequest(t, router, http.MethodGet, "/auth/profile", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/teachers", "", gin.H{
		"name":  "Dr. Smith",
		"email": "smith@school.com",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleEnforcement(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")
	userToken := registerUser(t, router, "user", "user@test.com", "user")

	rec := doRequest(t, router, http.MethodPost, "/teachers", userToken, gin.H{
		"name":  "Dr. Jones",
		"email": "jones@school.com",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "permission")

	rec = doRequest(t, router, http.MethodPost, "/teachers", adminToken, gin.H{
		"name":  "Dr. Smith",
		"email": "smith@school.com",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestValidationErrorShape(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")

	// missing code and credits
	rec := doRequest(t, router, http.MethodPost, "/courses", adminToken, gin.H{
		"title": "Mathematics",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Validation Error", body["message"])

	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]any)
	assert.NotEmpty(t, first["field"])
	assert.NotEmpty(t, first["message"])
}

func TestValidationRejectsBadStudent(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")

	cases := []struct {
		name    string
		payload gin.H
	}{
		{"missing email", gin.H{"name": "John Doe", "age": 20}},
		{"bad email", gin.H{"name": "John Doe", "email": "not-an-email", "age": 20}},
		{"age out of range", gin.H{"name": "John Doe", "email": "john@school.com", "age": 150}},
		{"short name", gin.H{"name": "J", "email": "john@school.com", "age": 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/students", adminToken, tc.payload)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Validation Error", decodeBody(t, rec)["message"])
		})
	}
}

func TestEnrollFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")

	rec := doRequest(t, router, http.MethodPost, "/courses", adminToken, gin.H{
		"title": "Mathematics", "code": "MATH101", "credits": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	courseID := decodeBody(t, rec)["id"].(string)

	rec = doRequest(t, router, http.MethodPost, "/students", adminToken, gin.H{
		"name": "John Doe", "email": "john@school.com", "age": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	studentID := decodeBody(t, rec)["id"].(string)

	// enroll twice; both succeed, membership stays at one
	for i := 0; i < 2; i++ {
		rec = doRequest(t, router, http.MethodPut, "/students/"+studentID+"/enroll-course", adminToken, gin.H{
			"courseId": courseID,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		ids := decodeBody(t, rec)["courseIds"].([]any)
		assert.Len(t, ids, 1)
	}

	// enroll body without courseId is caught by validation
	rec = doRequest(t, router, http.MethodPut, "/students/"+studentID+"/enroll-course", adminToken, gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation Error", decodeBody(t, rec)["message"])

	// removing a non-member course is a no-op success
	rec = doRequest(t, router, http.MethodPut, "/students/"+studentID+"/remove-course", adminToken, gin.H{
		"courseId": "not-a-member",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// deleting the course leaves the student readable
	rec = doRequest(t, router, http.MethodDelete, "/courses/"+courseID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/students/"+studentID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["courseIds"], courseID)
	assert.Empty(t, body["courses"])
}

func TestDuplicateCreateReturns400(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")

	payload := gin.H{"title": "Mathematics", "code": "MATH101", "credits": 3}
	rec := doRequest(t, router, http.MethodPost, "/courses", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/courses", adminToken, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "Error creating course")
}

func TestUpdateConflictReturns409(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")

	rec := doRequest(t, router, http.MethodPost, "/courses", adminToken, gin.H{
		"title": "Mathematics", "code": "MATH101", "credits": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/courses", adminToken, gin.H{
		"title": "Physics", "code": "PHYS101", "credits": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	physID := decodeBody(t, rec)["id"].(string)

	rec = doRequest(t, router, http.MethodPut, "/courses/"+physID, adminToken, gin.H{
		"code": "MATH101",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "already in use")
}

func TestCourseReadIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/courses", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserRoleMayUpdateCourse(t *testing.T) {
	router := newTestRouter(t)
	adminToken := registerUser(t, router, "admin", "admin@test.com", "admin")
	userToken := registerUser(t, router, "user", "user@test.com", "user")

	rec := doRequest(t, router, http.MethodPost, "/courses", adminToken, gin.H{
		"title": "Mathematics", "code": "MATH101", "credits": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	courseID := decodeBody(t, rec)["id"].(string)

	rec = doRequest(t, router, http.MethodPut, "/courses/"+courseID, userToken, gin.H{
		"title": "Applied Mathematics",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// but deletion stays admin-only
	rec = doRequest(t, router, http.MethodDelete, "/courses/"+courseID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["message"])
}

func TestGetMissingEntityReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/students/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student not found", decodeBody(t, rec)["message"])
}
