package cron

import (
	"log"
	"time"

	"github.com/tube24/tube24_go_server/internal/service"
)

type Service struct {
	subscriptionService *service.SubscriptionService
	stopChan            chan struct{}
}

func NewService(subscriptionService *service.SubscriptionService) *Service {
	return &Service{
		subscriptionService: subscriptionService,
		stopChan:            make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailySweep()
	log.Println("Cron service started (subscription sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailySweep 每日 UTC 零点降级到期订阅
func (s *Service) runDailySweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweep()
			timer.Reset(24 * time.Hour)
		}
	}
}

// RunNow 立即执行一次订阅清理，供 cleanup 命令手动触发
func (s *Service) RunNow() (int64, error) {
	return s.subscriptionService.Sweep(time.Now())
}

func (s *Service) sweep() {
	log.Println("Starting subscription sweep...")
	affected, err := s.subscriptionService.Sweep(time.Now())
	if err != nil {
		log.Printf("Subscription sweep failed: %v", err)
		return
	}
	log.Printf("Subscription sweep completed, %d users downgraded", affected)
}
