package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscollab/taskboard-api/internal/database"
	"github.com/campuscollab/taskboard-api/internal/models"
	"github.com/campuscollab/taskboard-api/internal/repository"
	"github.com/campuscollab/taskboard-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"name":       "Ada",
		"email":      "ada@example.com",
		"password":   "password123",
		"student_id": "12345678",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string `json:"message"`
		User    map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ada@example.com", response.User["email"])
	require.NotContains(t, response.User, "password")
}

func TestAuthHandler_Register_ShortStudentID(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"name":       "Ada",
		"email":      "ada@example.com",
		"password":   "password123",
		"student_id": "1234567",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Student ID must be 8-12 digits", response["error"])
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"name":       "Ada",
		"email":      "ada@example.com",
		"password":   "password123",
		"student_id": "12345678",
	}
	w := postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["student_id"] = "87654321"
	w = postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Email already registered", response["error"])
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"email": "ada@example.com",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  "password123",
		StudentID: "12345678",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "fake-jwt-token", response.Token)
	require.Equal(t, "ada@example.com", response.User["email"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  "password123",
		StudentID: "12345678",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "nope",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
