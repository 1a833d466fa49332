package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/repository"
)

func setupDemoService(t *testing.T) (*DemoService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := testConfig()
	cfg.Demo = config.DemoConfig{ExpireHours: 24}

	return NewDemoService(repository.NewDemoChannelRepository(rdb), cfg), mr
}

func TestDemoService_CreateAndGet(t *testing.T) {
	service, _ := setupDemoService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &dto.CreateDemoChannelRequest{
		Name:              "Try It",
		Description:       "no signup needed",
		YoutubePlaylistID: "https://youtube.com/playlist?list=PLdemo42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "PLdemo42", created.YoutubePlaylistID)
	assert.NotEmpty(t, created.ExpiresAt)

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
}

func TestDemoService_Get_NotFound(t *testing.T) {
	service, _ := setupDemoService(t)

	_, err := service.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrDemoNotFound)
}

func TestDemoService_Get_ExpiredAtBoundary(t *testing.T) {
	service, mr := setupDemoService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &dto.CreateDemoChannelRequest{
		Name:              "Boundary",
		YoutubePlaylistID: "PLboundary",
	})
	require.NoError(t, err)

	// redis TTL 模拟推进到刚好 24 小时
	mr.FastForward(24 * time.Hour)

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrDemoNotFound)
}
