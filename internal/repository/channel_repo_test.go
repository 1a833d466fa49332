package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tube24/tube24_go_server/internal/testutil"
)

func TestChannelRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)

	assert.NotZero(t, channel.ID)
	assert.Equal(t, user.ID, channel.UserID)
}

func TestChannelRepository_GetByIDWithPlaylists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewChannelRepository(db)

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)
	testutil.TestPlaylist(t, db, channel.ID, testutil.WithWindow(9*60, testutil.Minutes(12*60)))
	testutil.TestPlaylist(t, db, channel.ID, testutil.WithWindow(12*60, nil))

	found, err := repo.GetByIDWithPlaylists(channel.ID)
	require.NoError(t, err)
	assert.Len(t, found.Playlists, 2)
	// 按 ID 升序返回
	assert.Less(t, found.Playlists[0].ID, found.Playlists[1].ID)
}

func TestChannelRepository_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewChannelRepository(db)

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db, testutil.WithEmail("other@example.com"))

	testutil.TestChannel(t, db, user.ID, testutil.WithChannelName("Channel A"))
	testutil.TestChannel(t, db, user.ID, testutil.WithChannelName("Channel B"))
	testutil.TestChannel(t, db, other.ID, testutil.WithChannelName("Other"))

	channels, err := repo.ListByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, channels, 2)
}

func TestChannelRepository_CountByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewChannelRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestChannel(t, db, user.ID)
	testutil.TestChannel(t, db, user.ID)

	count, err := repo.CountByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestChannelRepository_Delete_CascadesPlaylists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	channelRepo := NewChannelRepository(db)
	playlistRepo := NewPlaylistRepository(db)

	user := testutil.TestUser(t, db)
	channel := testutil.TestChannel(t, db, user.ID)
	playlist := testutil.TestPlaylist(t, db, channel.ID)

	err := channelRepo.Delete(channel.ID)
	require.NoError(t, err)

	_, err = channelRepo.GetByID(channel.ID)
	assert.Error(t, err)

	_, err = playlistRepo.GetByID(playlist.ID)
	assert.Error(t, err)
}
