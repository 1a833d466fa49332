package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/youtube"
	"github.com/tube24/tube24_go_server/internal/repository"
)

var (
	ErrPlaylistNotFound = errors.New("歌单不存在")
	ErrEmptyWindow      = errors.New("开始时间和结束时间不能相同")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	channelRepo  *repository.ChannelRepository
}

func NewPlaylistService(
	playlistRepo *repository.PlaylistRepository,
	channelRepo *repository.ChannelRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		channelRepo:  channelRepo,
	}
}

// Create 在频道下创建歌单。YoutubePlaylistID 接受裸 ID 或完整 URL，
// 响应附带新窗口与既有窗口的重叠提示。
func (s *PlaylistService) Create(userID int64, req *dto.CreatePlaylistRequest) (*dto.PlaylistResponse, error) {
	if err := s.checkChannelOwner(userID, req.ChannelID); err != nil {
		return nil, err
	}

	youtubeID, err := youtube.ExtractPlaylistID(req.YoutubePlaylistID)
	if err != nil {
		return nil, err
	}

	startMinute, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	var endMinute *int
	if req.EndTime != "" {
		end, err := ParseClock(req.EndTime)
		if err != nil {
			return nil, err
		}
		if end == startMinute {
			return nil, ErrEmptyWindow
		}
		endMinute = &end
	}

	playlist := &model.Playlist{
		ChannelID:         req.ChannelID,
		YoutubePlaylistID: youtubeID,
		Name:              req.Name,
		Description:       req.Description,
		StartMinute:       startMinute,
		EndMinute:         endMinute,
	}

	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}

	return s.buildResponse(playlist)
}

// Update 更新歌单，仅所在频道的频道主可操作
func (s *PlaylistService) Update(userID, playlistID int64, req *dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error) {
	playlist, err := s.getOwned(userID, playlistID)
	if err != nil {
		return nil, err
	}

	if req.YoutubePlaylistID != nil {
		youtubeID, err := youtube.ExtractPlaylistID(*req.YoutubePlaylistID)
		if err != nil {
			return nil, err
		}
		playlist.YoutubePlaylistID = youtubeID
	}
	if req.Name != nil {
		playlist.Name = *req.Name
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.StartTime != nil {
		start, err := ParseClock(*req.StartTime)
		if err != nil {
			return nil, err
		}
		playlist.StartMinute = start
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			// 空字符串表示清除结束时间，播到午夜
			playlist.EndMinute = nil
		} else {
			end, err := ParseClock(*req.EndTime)
			if err != nil {
				return nil, err
			}
			playlist.EndMinute = &end
		}
	}

	if playlist.EndMinute != nil && *playlist.EndMinute == playlist.StartMinute {
		return nil, ErrEmptyWindow
	}

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, err
	}

	return s.buildResponse(playlist)
}

// Delete 删除歌单，仅所在频道的频道主可操作
func (s *PlaylistService) Delete(userID, playlistID int64) error {
	if _, err := s.getOwned(userID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// List 列出频道下的歌单（按插入顺序）
func (s *PlaylistService) List(channelID int64) ([]*dto.PlaylistInfo, error) {
	if _, err := s.channelRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	playlists, err := s.playlistRepo.ListByChannelID(channelID)
	if err != nil {
		return nil, err
	}

	infos := make([]*dto.PlaylistInfo, 0, len(playlists))
	for _, p := range playlists {
		infos = append(infos, buildPlaylistInfo(p))
	}
	return infos, nil
}

func (s *PlaylistService) getOwned(userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if err := s.checkChannelOwner(userID, playlist.ChannelID); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) checkChannelOwner(userID, channelID int64) error {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return err
	}
	if channel.UserID != userID {
		return ErrNotChannelOwner
	}
	return nil
}

// buildResponse 组装歌单响应，附带与同频道其他歌单的窗口重叠
func (s *PlaylistService) buildResponse(playlist *model.Playlist) (*dto.PlaylistResponse, error) {
	siblings, err := s.playlistRepo.ListByChannelID(playlist.ChannelID)
	if err != nil {
		return nil, err
	}

	all := make([]model.Playlist, 0, len(siblings))
	for _, p := range siblings {
		all = append(all, *p)
	}

	var conflicts []*dto.ConflictInfo
	for _, c := range Conflicts(all) {
		if c.PlaylistID == playlist.ID || c.OverlapsID == playlist.ID {
			conflicts = append(conflicts, c)
		}
	}

	return &dto.PlaylistResponse{
		Playlist:  buildPlaylistInfo(playlist),
		Conflicts: conflicts,
	}, nil
}
