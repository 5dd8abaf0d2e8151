package service

import (
	"Lyra_Tube/internal/repository"
)

// DashboardService 创作者后台：频道统计 + 含未发布稿件的视频列表
type DashboardService interface {
	GetChannelStats(ownerID uint64) (*repository.ChannelStatsRow, error)
	GetChannelVideos(ownerID uint64) ([]repository.ChannelVideoRow, error)
}

type dashboardService struct {
	videoRepo repository.VideoRepository
}

func NewDashboardService(videoRepo repository.VideoRepository) DashboardService {
	return &dashboardService{videoRepo: videoRepo}
}

func (s *dashboardService) GetChannelStats(ownerID uint64) (*repository.ChannelStatsRow, error) {
	return s.videoRepo.GetChannelStats(ownerID)
}

// GetChannelVideos 后台列表不过滤发布状态，作者要能看到自己的草稿
func (s *dashboardService) GetChannelVideos(ownerID uint64) ([]repository.ChannelVideoRow, error) {
	return s.videoRepo.GetChannelVideos(ownerID, false)
}
