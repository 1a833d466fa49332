package repository

import (
	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Create(channel *model.Channel) error {
	return r.db.Create(channel).Error
}

func (r *ChannelRepository) GetByID(id int64) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.Where("id = ?", id).First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByIDWithPlaylists 取频道及其歌单，歌单按插入顺序
func (r *ChannelRepository) GetByIDWithPlaylists(id int64) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.Preload("Playlists", func(db *gorm.DB) *gorm.DB {
		return db.Order("playlists.id ASC")
	}).Where("id = ?", id).First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListByUserID 取某用户的全部频道（含歌单）
func (r *ChannelRepository) ListByUserID(userID int64) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := r.db.Preload("Playlists", func(db *gorm.DB) *gorm.DB {
		return db.Order("playlists.id ASC")
	}).Where("user_id = ?", userID).Order("id ASC").Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Channel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ChannelRepository) Update(channel *model.Channel) error {
	return r.db.Save(channel).Error
}

// Delete 删除频道并级联删除其歌单，单个事务内完成
func (r *ChannelRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", id).Delete(&model.Playlist{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Channel{}).Error
	})
}
