package dto

import (
	"time"

	"Lyra_Tube/internal/repository"
)

// SubscriberResponse 频道的一个粉丝，带"我是否也订阅了他"的回订标记
type SubscriberResponse struct {
	ID                       uint64 `json:"id"`
	Username                 string `json:"username"`
	ProfileImageURL          string `json:"profile_image_url"`
	SubscriberCount          uint64 `json:"subscriber_count"`
	IsSubscribedToSubscriber bool   `json:"is_subscribed_to_subscriber"`
}

func ToSubscriberResponses(rows []repository.SubscriberRow) []SubscriberResponse {
	responses := make([]SubscriberResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, SubscriberResponse{
			ID:                       row.SubscriberID,
			Username:                 row.Username,
			ProfileImageURL:          row.ProfileImageURL,
			SubscriberCount:          row.SubscriberCount,
			IsSubscribedToSubscriber: row.IsSubscribedToSubscriber,
		})
	}
	return responses
}

// LatestVideoResponse 已订阅频道里挂载的最新一条视频
type LatestVideoResponse struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoFileURL string    `json:"video_file_url"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscribedChannelResponse 我订阅的一个频道，latest_video可能为null（频道还没发过视频）
type SubscribedChannelResponse struct {
	ID              uint64               `json:"id"`
	Username        string               `json:"username"`
	ProfileImageURL string               `json:"profile_image_url"`
	SubscriberCount uint64               `json:"subscriber_count"`
	LatestVideo     *LatestVideoResponse `json:"latest_video"`
}

func ToSubscribedChannelResponses(rows []repository.SubscribedChannelRow) []SubscribedChannelResponse {
	responses := make([]SubscribedChannelResponse, 0, len(rows))
	for _, row := range rows {
		resp := SubscribedChannelResponse{
			ID:              row.ChannelID,
			Username:        row.Username,
			ProfileImageURL: row.ProfileImageURL,
			SubscriberCount: row.SubscriberCount,
		}
		if row.LatestVideo != nil {
			resp.LatestVideo = &LatestVideoResponse{
				ID:           row.LatestVideo.ID,
				Title:        row.LatestVideo.Title,
				Description:  row.LatestVideo.Description,
				ThumbnailURL: row.LatestVideo.ThumbnailURL,
				VideoFileURL: row.LatestVideo.VideoFileURL,
				Duration:     row.LatestVideo.Duration,
				Views:        row.LatestVideo.Views,
				CreatedAt:    row.LatestVideo.CreatedAt,
			}
		}
		responses = append(responses, resp)
	}
	return responses
}
