package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/youtube"
	"github.com/tube24/tube24_go_server/internal/repository"
)

var ErrDemoNotFound = errors.New("体验频道不存在或已过期")

// DemoService 免注册体验频道。存 redis，24 小时后过期。
type DemoService struct {
	demoRepo *repository.DemoChannelRepository
	cfg      *config.Config
}

func NewDemoService(demoRepo *repository.DemoChannelRepository, cfg *config.Config) *DemoService {
	return &DemoService{demoRepo: demoRepo, cfg: cfg}
}

func (s *DemoService) ttl() time.Duration {
	return time.Duration(s.cfg.Demo.ExpireHours) * time.Hour
}

// Create 创建体验频道，无需登录
func (s *DemoService) Create(ctx context.Context, req *dto.CreateDemoChannelRequest) (*dto.DemoChannelInfo, error) {
	youtubeID, err := youtube.ExtractPlaylistID(req.YoutubePlaylistID)
	if err != nil {
		return nil, err
	}

	demo := &model.DemoChannel{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		YoutubePlaylistID: youtubeID,
		CreatedAt:         time.Now(),
	}

	if err := s.demoRepo.Save(ctx, demo, s.ttl()); err != nil {
		return nil, err
	}

	return s.buildInfo(demo), nil
}

// Get 获取体验频道。redis TTL 之外再做一次精确的到期判断，
// 保证恰好到达 24 小时边界时视为已过期。
func (s *DemoService) Get(ctx context.Context, id string) (*dto.DemoChannelInfo, error) {
	demo, err := s.demoRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDemoChannelNotFound) {
			return nil, ErrDemoNotFound
		}
		return nil, err
	}

	if demo.Expired(time.Now(), s.ttl()) {
		// 边界兜底，顺手清掉残留的 key
		_ = s.demoRepo.Delete(ctx, id)
		return nil, ErrDemoNotFound
	}

	return s.buildInfo(demo), nil
}

func (s *DemoService) buildInfo(demo *model.DemoChannel) *dto.DemoChannelInfo {
	return &dto.DemoChannelInfo{
		ID:                demo.ID,
		Name:              demo.Name,
		Description:       demo.Description,
		YoutubePlaylistID: demo.YoutubePlaylistID,
		Thumbnail:         demo.Thumbnail,
		CreatedAt:         demo.CreatedAt.Format(time.RFC3339),
		ExpiresAt:         demo.ExpiresAt(s.ttl()).Format(time.RFC3339),
	}
}
