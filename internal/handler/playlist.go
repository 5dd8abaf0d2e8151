package handler

import (
	"net/http"
	"strconv"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	CreatePlaylist(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
	GetUserPlaylists(c *gin.Context)
	GetPlaylistDetail(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *playlistHandler) CreatePlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	playlist, err := h.PlaylistService.CreatePlaylist(userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusCreated, dto.ToPlaylistResponse(playlist), "播放列表创建成功")
}

func (h *playlistHandler) UpdatePlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	playlist, err := h.PlaylistService.UpdatePlaylist(playlistID, userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "播放列表更新成功")
}

func (h *playlistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.PlaylistService.DeletePlaylist(playlistID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "播放列表删除成功")
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.PlaylistService.AddVideo(playlistID, videoID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "视频已加入播放列表")
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.PlaylistService.RemoveVideo(playlistID, videoID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "视频已移出播放列表")
}

// GetUserPlaylists 查某用户的播放列表，user_id缺省为当前用户
func (h *playlistHandler) GetUserPlaylists(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	targetID := userID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			sendErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
			return
		}
		targetID = parsed
	}

	rows, err := h.PlaylistService.GetUserPlaylists(targetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToPlaylistSummaryResponses(rows), "成功获取播放列表")
}

func (h *playlistHandler) GetPlaylistDetail(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	if _, ok := mustUserID(c); !ok {
		return
	}

	detail, err := h.PlaylistService.GetPlaylistDetail(playlistID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToPlaylistDetailResponse(detail), "成功获取播放列表详情")
}
