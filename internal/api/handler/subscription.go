package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tube24/tube24_go_server/internal/api/middleware"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// ListPlans 套餐目录（公开）
// GET /api/v1/plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	response.Success(c, h.subscriptionService.ListPlans())
}

// GetCurrent 当前订阅状态
// GET /api/v1/subscription
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subscriptionService.GetCurrent(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}

// Subscribe 订阅付费套餐（支付为模拟，立即生效）
// POST /api/v1/subscription
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.subscriptionService.Subscribe(userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyOnPlan):
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "订阅成功", info)
}

// Cancel 取消订阅，已付周期继续生效
// DELETE /api/v1/subscription
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subscriptionService.Cancel(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已取消，当前周期结束后降为免费套餐", info)
}

// Resume 恢复已取消的订阅
// POST /api/v1/subscription/resume
func (h *SubscriptionHandler) Resume(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subscriptionService.Resume(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotCanceled) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "订阅已恢复", info)
}
