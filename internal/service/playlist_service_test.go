package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/youtube"
	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/testutil"
)

func setupPlaylistService(t *testing.T) (*PlaylistService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewPlaylistService(
		repository.NewPlaylistRepository(db),
		repository.NewChannelRepository(db),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestPlaylistService_Create(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	resp, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLabc123",
		Name:              "Morning Mix",
		StartTime:         "09:00",
		EndTime:           "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "PLabc123", resp.Playlist.YoutubePlaylistID)
	assert.Equal(t, "09:00", resp.Playlist.StartTime)
	assert.Equal(t, "12:00", resp.Playlist.EndTime)
	assert.Empty(t, resp.Conflicts)
}

func TestPlaylistService_Create_FromURL(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	resp, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "https://youtube.com/playlist?list=PL123&feature=share",
		Name:              "From URL",
		StartTime:         "00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "PL123", resp.Playlist.YoutubePlaylistID)
}

func TestPlaylistService_Create_InvalidURL(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	_, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "https://youtube.com/watch?v=abc",
		Name:              "Bad",
		StartTime:         "09:00",
	})
	assert.ErrorIs(t, err, youtube.ErrInvalidPlaylist)
}

func TestPlaylistService_Create_InvalidClock(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	_, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLabc",
		Name:              "Bad Clock",
		StartTime:         "25:00",
	})
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestPlaylistService_Create_EmptyWindow(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	_, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLabc",
		Name:              "Zero Width",
		StartTime:         "09:00",
		EndTime:           "09:00",
	})
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

func TestPlaylistService_Create_SurfacesConflicts(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	_, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLfirst",
		Name:              "First",
		StartTime:         "09:00",
		EndTime:           "12:00",
	})
	require.NoError(t, err)

	// 重叠窗口照常保存，冲突在响应里提示
	resp, err := service.Create(user.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLsecond",
		Name:              "Second",
		StartTime:         "10:00",
		EndTime:           "13:00",
	})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "10:00", resp.Conflicts[0].OverlapStart)
	assert.Equal(t, "12:00", resp.Conflicts[0].OverlapEnd)
}

func TestPlaylistService_Create_NotOwner(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	owner := testutil.TestUser(t, db)
	stranger := testutil.TestUser(t, db, testutil.WithEmail("stranger@example.com"))
	channel := testutil.TestChannel(t, db, owner.ID)

	_, err := service.Create(stranger.ID, &dto.CreatePlaylistRequest{
		ChannelID:         channel.ID,
		YoutubePlaylistID: "PLabc",
		Name:              "Nope",
		StartTime:         "09:00",
	})
	assert.ErrorIs(t, err, ErrNotChannelOwner)
}

func TestPlaylistService_Update_ClearEndTime(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)
	playlist := testutil.TestPlaylist(t, db, channel.ID,
		testutil.WithWindow(9*60, testutil.Minutes(12*60)))

	empty := ""
	resp, err := service.Update(user.ID, playlist.ID, &dto.UpdatePlaylistRequest{
		EndTime: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Playlist.EndTime)
}

func TestPlaylistService_Update_NotFound(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	name := "Ghost"
	_, err := service.Update(user.ID, 99999, &dto.UpdatePlaylistRequest{Name: &name})
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistService_Delete(t *testing.T) {
	service, db, cleanup := setupPlaylistService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)
	playlist := testutil.TestPlaylist(t, db, channel.ID)

	err := service.Delete(user.ID, playlist.ID)
	require.NoError(t, err)

	infos, err := service.List(channel.ID)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestPlaylistService_List_ChannelNotFound(t *testing.T) {
	service, _, cleanup := setupPlaylistService(t)
	defer cleanup()

	_, err := service.List(99999)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}
