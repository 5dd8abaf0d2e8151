package handler

import (
	"net/http"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 创作者后台：只暴露当前登录用户自己的数据
type DashboardHandler interface {
	GetChannelStats(c *gin.Context)
	GetChannelVideos(c *gin.Context)
}

type dashboardHandler struct {
	DashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) DashboardHandler {
	return &dashboardHandler{DashboardService: dashboardService}
}

func (h *dashboardHandler) GetChannelStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	stats, err := h.DashboardService.GetChannelStats(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToChannelStatsResponse(stats), "成功获取频道统计")
}

func (h *dashboardHandler) GetChannelVideos(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	rows, err := h.DashboardService.GetChannelVideos(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToChannelVideoResponses(rows), "成功获取频道视频")
}
