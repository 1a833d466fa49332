package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/repository"
)

var (
	ErrInvalidPlan          = errors.New("套餐不存在")
	ErrAlreadyOnPlan        = errors.New("已经订阅该套餐")
	ErrNoActiveSubscription = errors.New("当前没有生效的订阅")
	ErrNotCanceled          = errors.New("订阅未取消，无需恢复")
)

// SubscriptionService 订阅管理。支付是模拟的：订阅即刻生效，不接外部支付渠道。
type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// ListPlans 返回套餐目录（来自配置的静态目录）
func (s *SubscriptionService) ListPlans() []*dto.PlanInfo {
	plans := make([]*dto.PlanInfo, 0, len(s.cfg.Subscription.Plans))
	for _, p := range s.cfg.Subscription.Plans {
		plans = append(plans, &dto.PlanInfo{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Period:      p.Period,
			MaxChannels: p.MaxChannels,
			Description: p.Description,
		})
	}
	return plans
}

// Subscribe 订阅付费套餐，立即生效，按月计费
func (s *SubscriptionService) Subscribe(userID int64, planID string) (*dto.SubscriptionInfo, error) {
	plan, ok := s.findPlan(planID)
	if !ok || plan.ID == "free" {
		return nil, ErrInvalidPlan
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Plan == plan.ID && user.SubscriptionStatus == "active" {
		return nil, ErrAlreadyOnPlan
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 1, 0)

	sub := &model.Subscription{
		UserID:    userID,
		Plan:      plan.ID,
		Amount:    plan.Price,
		StartedAt: now,
		ExpiresAt: &expiresAt,
		Status:    "active",
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"plan":                 plan.ID,
		"subscription_status":  "active",
		"subscription_ends_at": expiresAt,
	}); err != nil {
		return nil, err
	}

	return &dto.SubscriptionInfo{
		Plan:      plan.ID,
		Status:    "active",
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// Cancel 取消订阅。已付周期继续生效，到期后降回 free。
func (s *SubscriptionService) Cancel(userID int64) (*dto.SubscriptionInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Plan == "free" || user.SubscriptionStatus != "active" {
		return nil, ErrNoActiveSubscription
	}

	sub, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if sub != nil {
		if err := s.subRepo.UpdateStatus(sub.ID, "canceled"); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"subscription_status": "canceled",
	}); err != nil {
		return nil, err
	}

	return s.GetCurrent(userID)
}

// Resume 恢复已取消但尚未到期的订阅
func (s *SubscriptionService) Resume(userID int64) (*dto.SubscriptionInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.SubscriptionStatus != "canceled" {
		return nil, ErrNotCanceled
	}

	sub, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if sub != nil {
		if err := s.subRepo.UpdateStatus(sub.ID, "active"); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"subscription_status": "active",
	}); err != nil {
		return nil, err
	}

	return s.GetCurrent(userID)
}

// GetCurrent 获取用户当前订阅状态
func (s *SubscriptionService) GetCurrent(userID int64) (*dto.SubscriptionInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	info := &dto.SubscriptionInfo{
		Plan:   user.Plan,
		Status: user.SubscriptionStatus,
	}
	if user.SubscriptionEndsAt != nil {
		info.ExpiresAt = user.SubscriptionEndsAt.Format(time.RFC3339)
	}
	return info, nil
}

// Sweep 把到期订阅标记为 expired，并把对应用户降回 free。
// 由定时任务每日执行，也可通过 cleanup 命令手动触发。
func (s *SubscriptionService) Sweep(now time.Time) (int64, error) {
	if _, err := s.subRepo.ExpireDue(now); err != nil {
		return 0, err
	}
	return s.userRepo.ExpireSubscriptions(now)
}

func (s *SubscriptionService) findPlan(id string) (config.PlanConfig, bool) {
	for _, p := range s.cfg.Subscription.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return config.PlanConfig{}, false
}
