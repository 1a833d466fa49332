package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/oss"
	"github.com/tube24/tube24_go_server/internal/repository"
)

var (
	ErrChannelNotFound      = errors.New("频道不存在")
	ErrNotChannelOwner      = errors.New("无权操作该频道")
	ErrChannelQuotaExceeded = errors.New("频道数量已达套餐上限")
	ErrInvalidTimezone      = errors.New("无效的时区")
	ErrFileTooLarge         = errors.New("文件大小超过限制")
	ErrInvalidFileType      = errors.New("不支持的文件类型")
)

type ChannelService struct {
	channelRepo *repository.ChannelRepository
	userRepo    *repository.UserRepository
	ossClient   *oss.Client
	cfg         *config.Config
}

func NewChannelService(
	channelRepo *repository.ChannelRepository,
	userRepo *repository.UserRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		ossClient:   ossClient,
		cfg:         cfg,
	}
}

// Create 创建频道，按用户套餐检查数量上限
func (s *ChannelService) Create(userID int64, req *dto.CreateChannelRequest) (*dto.ChannelDetail, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	plan := s.cfg.Subscription.Plan(user.Plan)
	if plan.MaxChannels > 0 {
		count, err := s.channelRepo.CountByUserID(userID)
		if err != nil {
			return nil, err
		}
		if count >= int64(plan.MaxChannels) {
			return nil, ErrChannelQuotaExceeded
		}
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	channel := &model.Channel{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Timezone:    timezone,
	}

	if err := s.channelRepo.Create(channel); err != nil {
		return nil, err
	}

	return s.buildChannelDetail(channel), nil
}

// Get 获取频道详情（含歌单，按插入顺序）。公开接口，不校验归属。
func (s *ChannelService) Get(channelID int64) (*dto.ChannelDetail, error) {
	channel, err := s.channelRepo.GetByIDWithPlaylists(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.buildChannelDetail(channel), nil
}

// List 列出用户的所有频道
func (s *ChannelService) List(userID int64) ([]*dto.ChannelDetail, error) {
	channels, err := s.channelRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	details := make([]*dto.ChannelDetail, 0, len(channels))
	for _, channel := range channels {
		details = append(details, s.buildChannelDetail(channel))
	}
	return details, nil
}

// Update 更新频道，仅频道主可操作
func (s *ChannelService) Update(userID, channelID int64, req *dto.UpdateChannelRequest) (*dto.ChannelDetail, error) {
	channel, err := s.getOwned(userID, channelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		channel.Name = *req.Name
	}
	if req.Description != nil {
		channel.Description = *req.Description
	}
	if req.Thumbnail != nil {
		channel.Thumbnail = *req.Thumbnail
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		channel.Timezone = *req.Timezone
	}

	if err := s.channelRepo.Update(channel); err != nil {
		return nil, err
	}

	return s.Get(channelID)
}

// Delete 删除频道及其全部歌单，仅频道主可操作
func (s *ChannelService) Delete(userID, channelID int64) error {
	if _, err := s.getOwned(userID, channelID); err != nil {
		return err
	}
	return s.channelRepo.Delete(channelID)
}

// UploadThumbnail 上传频道缩略图到 OSS，返回可访问的 URL
func (s *ChannelService) UploadThumbnail(userID, channelID int64, filename string, data []byte) (string, error) {
	channel, err := s.getOwned(userID, channelID)
	if err != nil {
		return "", err
	}

	if s.ossClient == nil {
		return "", errors.New("上传服务未配置")
	}

	if int64(len(data)) > s.cfg.Upload.MaxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(fileExt(filename))
	if !s.extAllowed(ext) {
		return "", ErrInvalidFileType
	}

	url, err := s.ossClient.UploadThumbnail(channelID, data, ext)
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	channel.Thumbnail = url
	if err := s.channelRepo.Update(channel); err != nil {
		return "", err
	}

	return url, nil
}

func (s *ChannelService) getOwned(userID, channelID int64) (*model.Channel, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	if channel.UserID != userID {
		return nil, ErrNotChannelOwner
	}
	return channel, nil
}

func (s *ChannelService) extAllowed(ext string) bool {
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func fileExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}

func (s *ChannelService) buildChannelDetail(channel *model.Channel) *dto.ChannelDetail {
	detail := &dto.ChannelDetail{
		ID:          channel.ID,
		UserID:      channel.UserID,
		Name:        channel.Name,
		Description: channel.Description,
		Thumbnail:   channel.Thumbnail,
		Timezone:    channel.Timezone,
		Playlists:   make([]*dto.PlaylistInfo, 0, len(channel.Playlists)),
		CreatedAt:   channel.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   channel.UpdatedAt.Format(time.RFC3339),
	}

	for i := range channel.Playlists {
		detail.Playlists = append(detail.Playlists, buildPlaylistInfo(&channel.Playlists[i]))
	}
	return detail
}
