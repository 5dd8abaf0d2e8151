package dto

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

// VideoResponse 是视频的基础响应结构，feed流和投稿接口共用
type VideoResponse struct {
	ID           uint64    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	IsPublished  bool      `json:"is_published"`
	VideoFileURL string    `json:"video_file_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Owner        UserInfo  `json:"owner"`
}

// ToVideoResponse 把DB模型转换为API响应模型，并且正确利用preload返回的数据
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:           video.ID,
		CreatedAt:    video.CreatedAt,
		Title:        video.Title,
		Description:  video.Description,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		VideoFileURL: video.VideoFileURL,
		ThumbnailURL: video.ThumbnailURL,
	}
	// 检查Owner是否被成功preload
	if video.Owner.ID != 0 {
		resp.Owner = UserInfo{
			ID:              video.Owner.ID,
			Username:        video.Owner.Username,
			ProfileImageURL: video.Owner.ProfileImageURL,
		}
	} else {
		// 没有preload时至少带上外键
		resp.Owner.ID = video.OwnerID
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	responses := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, ToVideoResponse(&videos[i]))
	}
	return responses
}

// VideoDetailResponse 详情页在基础字段之上叠加点赞和订阅聚合
type VideoDetailResponse struct {
	ID              uint64    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Duration        float64   `json:"duration"`
	Views           uint64    `json:"views"`
	IsPublished     bool      `json:"is_published"`
	VideoFileURL    string    `json:"video_file_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	LikeCount       uint64    `json:"like_count"`
	IsLiked         bool      `json:"is_liked"`
	SubscriberCount uint64    `json:"subscriber_count"`
	IsSubscribed    bool      `json:"is_subscribed"`
	Owner           UserInfo  `json:"owner"`
}

func ToVideoDetailResponse(row *repository.VideoDetailRow) VideoDetailResponse {
	return VideoDetailResponse{
		ID:              row.ID,
		CreatedAt:       row.CreatedAt,
		Title:           row.Title,
		Description:     row.Description,
		Duration:        row.Duration,
		Views:           row.Views,
		IsPublished:     row.IsPublished,
		VideoFileURL:    row.VideoFileURL,
		ThumbnailURL:    row.ThumbnailURL,
		LikeCount:       row.LikeCount,
		IsLiked:         row.IsLiked,
		SubscriberCount: row.SubscriberCount,
		IsSubscribed:    row.IsSubscribed,
		Owner: UserInfo{
			ID:              row.OwnerID,
			Username:        row.OwnerUsername,
			ProfileImageURL: row.OwnerProfileImageURL,
		},
	}
}

// ChannelVideoResponse 频道/后台视频列表里的一条，带发布状态和点赞数
type ChannelVideoResponse struct {
	ID           uint64    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	IsPublished  bool      `json:"is_published"`
	VideoFileURL string    `json:"video_file_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	LikeCount    uint64    `json:"like_count"`
}

func ToChannelVideoResponses(rows []repository.ChannelVideoRow) []ChannelVideoResponse {
	responses := make([]ChannelVideoResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ChannelVideoResponse{
			ID:           row.ID,
			CreatedAt:    row.CreatedAt,
			Title:        row.Title,
			Description:  row.Description,
			Duration:     row.Duration,
			Views:        row.Views,
			IsPublished:  row.IsPublished,
			VideoFileURL: row.VideoFileURL,
			ThumbnailURL: row.ThumbnailURL,
			LikeCount:    row.LikeCount,
		})
	}
	return responses
}

// ChannelStatsResponse 创作者后台的四个统计数
type ChannelStatsResponse struct {
	TotalVideos     uint64 `json:"total_videos"`
	TotalViews      uint64 `json:"total_views"`
	TotalLikes      uint64 `json:"total_likes"`
	SubscriberCount uint64 `json:"subscriber_count"`
}

func ToChannelStatsResponse(row *repository.ChannelStatsRow) ChannelStatsResponse {
	return ChannelStatsResponse{
		TotalVideos:     row.TotalVideos,
		TotalViews:      row.TotalViews,
		TotalLikes:      row.TotalLikes,
		SubscriberCount: row.SubscriberCount,
	}
}
