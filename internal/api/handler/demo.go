package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/pkg/youtube"
	"github.com/tube24/tube24_go_server/internal/service"
)

type DemoHandler struct {
	demoService *service.DemoService
}

func NewDemoHandler(demoService *service.DemoService) *DemoHandler {
	return &DemoHandler{
		demoService: demoService,
	}
}

// Create 创建体验频道（免登录，24 小时后过期）
// POST /api/v1/demo/channels
func (h *DemoHandler) Create(c *gin.Context) {
	var req dto.CreateDemoChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.demoService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, youtube.ErrInvalidPlaylist) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "创建成功", info)
}

// Get 获取体验频道
// GET /api/v1/demo/channels/:id
func (h *DemoHandler) Get(c *gin.Context) {
	info, err := h.demoService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDemoNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
