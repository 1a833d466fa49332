package repository

import (
	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByChannelID 取频道下全部歌单，按插入顺序
func (r *PlaylistRepository) ListByChannelID(channelID int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.Where("channel_id = ?", channelID).Order("id ASC").Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *PlaylistRepository) Update(playlist *model.Playlist) error {
	return r.db.Save(playlist).Error
}

func (r *PlaylistRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Playlist{}).Error
}
