package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/service"
	"github.com/tube24/tube24_go_server/internal/testutil"
)

func setupUserHandler(t *testing.T) (*UserHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, testHandlerConfig())
	handler := NewUserHandler(authService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func TestUserHandler_GetProfile(t *testing.T) {
	handler, db, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithName("观众甲"))

	router := authedRouter(user.ID)
	router.GET("/user/profile", handler.GetProfile)

	w := performRequest(router, http.MethodGet, "/user/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var info dto.UserInfo
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, "观众甲", info.Name)
	assert.Equal(t, "free", info.Plan)
}

func TestUserHandler_GetProfile_UserNotFound(t *testing.T) {
	handler, _, cleanup := setupUserHandler(t)
	defer cleanup()

	router := authedRouter(99999)
	router.GET("/user/profile", handler.GetProfile)

	w := performRequest(router, http.MethodGet, "/user/profile", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	handler, db, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := authedRouter(user.ID)
	router.PUT("/user/profile", handler.UpdateProfile)

	name := "新名字"
	avatar := "https://cdn.example.com/avatar.png"
	w := performRequest(router, http.MethodPut, "/user/profile", dto.UpdateProfileRequest{
		Name:      &name,
		AvatarURL: &avatar,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var info dto.UserInfo
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, "新名字", info.Name)
	assert.Equal(t, avatar, info.AvatarURL)
}

func TestUserHandler_UpdateProfile_InvalidName(t *testing.T) {
	handler, db, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := authedRouter(user.ID)
	router.PUT("/user/profile", handler.UpdateProfile)

	// 名字少于 2 个字符被 binding 拦下
	name := "a"
	w := performRequest(router, http.MethodPut, "/user/profile", dto.UpdateProfileRequest{
		Name: &name,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}
