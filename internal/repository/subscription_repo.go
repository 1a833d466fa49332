package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

// GetActiveByUserID 获取用户当前生效的订阅记录
func (r *SubscriptionRepository) GetActiveByUserID(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND status IN ?", userID, []string{"active", "canceled"}).
		Order("id DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ListByUserID(userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).
		Update("status", status).Error
}

// ExpireDue 把到期的订阅记录标记为 expired
func (r *SubscriptionRepository) ExpireDue(now time.Time) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("status IN ? AND expires_at IS NOT NULL AND expires_at <= ?",
			[]string{"active", "canceled"}, now).
		Update("status", "expired")
	return result.RowsAffected, result.Error
}
