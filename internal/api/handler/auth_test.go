package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/api/middleware"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/service"
	"github.com/tube24/tube24_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testHandlerConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Subscription: config.SubscriptionConfig{
			Plans: []config.PlanConfig{
				{ID: "free", Name: "Free", Price: 0, Period: "monthly", MaxChannels: 2},
				{ID: "pro", Name: "Pro", Price: 9.99, Period: "monthly", MaxChannels: 0},
				{ID: "business", Name: "Business", Price: 29.99, Period: "monthly", MaxChannels: 0},
			},
		},
		Upload: config.UploadConfig{
			MaxSize:           2 * 1024 * 1024,
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		},
	}
}

func setupAuthHandler(t *testing.T) (*AuthHandler, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	authService := service.NewAuthService(userRepo, testHandlerConfig())
	handler := NewAuthHandler(authService, nil)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, cleanup
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// authedRouter 构造一个把 userID 写入上下文的测试路由
func authedRouter(userID int64) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	return router
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/register", handler.Register)

	req := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	w := performRequest(router, "POST", "/register", req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/register", handler.Register)

	req := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	w := performRequest(router, "POST", "/register", req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 重复邮箱注册返回 409
	w = performRequest(router, "POST", "/register", req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, response.CodeConflict, resp.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	handler, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/register", handler.Register)

	req := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "12345",
		Name:     "Test User",
	}

	w := performRequest(router, "POST", "/register", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)

	w := performRequest(router, "POST", "/register", dto.RegisterRequest{
		Email:    "login@example.com",
		Password: "password123",
		Name:     "Login User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "POST", "/login", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)

	w := performRequest(router, "POST", "/register", dto.RegisterRequest{
		Email:    "login@example.com",
		Password: "password123",
		Name:     "Login User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "POST", "/login", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
