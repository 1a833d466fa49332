package handler

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tube24/tube24_go_server/internal/api/middleware"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/service"
)

type ChannelHandler struct {
	channelService  *service.ChannelService
	scheduleService *service.ScheduleService
}

func NewChannelHandler(
	channelService *service.ChannelService,
	scheduleService *service.ScheduleService,
) *ChannelHandler {
	return &ChannelHandler{
		channelService:  channelService,
		scheduleService: scheduleService,
	}
}

// Create 创建频道
// POST /api/v1/channels
func (h *ChannelHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.channelService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChannelQuotaExceeded):
			response.QuotaError(c, err.Error())
		case errors.Is(err, service.ErrInvalidTimezone):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", detail)
}

// List 列出当前用户的频道
// GET /api/v1/channels
func (h *ChannelHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	details, err := h.channelService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, details)
}

// Get 获取频道详情（公开，直播页使用）
// GET /api/v1/channels/:id
func (h *ChannelHandler) Get(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	detail, err := h.channelService.Get(channelID)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, detail)
}

// Live 解析频道当前在播内容
// GET /api/v1/channels/:id/live?at=2026-03-10T10:00:00Z
func (h *ChannelHandler) Live(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	at := time.Now()
	if atParam := c.Query("at"); atParam != "" {
		at, err = time.Parse(time.RFC3339, atParam)
		if err != nil {
			response.ParamError(c, "at 参数应为 RFC3339 时间")
			return
		}
	}

	status, err := h.scheduleService.Resolve(channelID, at)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// Update 更新频道
// PUT /api/v1/channels/:id
func (h *ChannelHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	var req dto.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.channelService.Update(userID, channelID, &req)
	if err != nil {
		h.handleChannelError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", detail)
}

// Delete 删除频道
// DELETE /api/v1/channels/:id
func (h *ChannelHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	if err := h.channelService.Delete(userID, channelID); err != nil {
		h.handleChannelError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// UploadThumbnail 上传频道缩略图
// POST /api/v1/channels/:id/thumbnail
func (h *ChannelHandler) UploadThumbnail(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择文件")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}

	url, err := h.channelService.UploadThumbnail(userID, channelID, file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChannelNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotChannelOwner):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrInvalidFileType):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", gin.H{
		"thumbnail": url,
	})
}

func (h *ChannelHandler) handleChannelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNotChannelOwner):
		response.PermissionError(c, err.Error())
	case errors.Is(err, service.ErrInvalidTimezone):
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
