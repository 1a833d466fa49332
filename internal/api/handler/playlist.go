package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tube24/tube24_go_server/internal/api/middleware"
	"github.com/tube24/tube24_go_server/internal/model/dto"
	"github.com/tube24/tube24_go_server/internal/pkg/response"
	"github.com/tube24/tube24_go_server/internal/pkg/youtube"
	"github.com/tube24/tube24_go_server/internal/service"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
	}
}

// Create 创建歌单
// POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.playlistService.Create(userID, &req)
	if err != nil {
		h.handlePlaylistError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", resp)
}

// Update 更新歌单
// PUT /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的歌单 ID")
		return
	}

	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.playlistService.Update(userID, playlistID, &req)
	if err != nil {
		h.handlePlaylistError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", resp)
}

// Delete 删除歌单
// DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的歌单 ID")
		return
	}

	if err := h.playlistService.Delete(userID, playlistID); err != nil {
		h.handlePlaylistError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// ListByChannel 列出频道下的歌单
// GET /api/v1/channels/:id/playlists
func (h *PlaylistHandler) ListByChannel(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的频道 ID")
		return
	}

	infos, err := h.playlistService.List(channelID)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}

func (h *PlaylistHandler) handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrPlaylistNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNotChannelOwner):
		response.PermissionError(c, err.Error())
	case errors.Is(err, service.ErrInvalidClock),
		errors.Is(err, service.ErrEmptyWindow),
		errors.Is(err, youtube.ErrInvalidPlaylist):
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
