package dto

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

// UserInfo 是在DTO中使用的、简化的用户信息
type UserInfo struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}

// UserResponse 是当前用户的完整响应结构，刻意不含密码和刷新令牌
type UserResponse struct {
	ID              uint64    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}
}

// LoginResponse 登录成功时把令牌对和用户信息一起返回，方便非浏览器客户端
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// TokenPairResponse 是刷新令牌接口的响应结构
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChannelProfileResponse 频道主页：基本信息 + 订阅相关聚合
type ChannelProfileResponse struct {
	ID                uint64 `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfileImageURL   string `json:"profile_image_url"`
	SubscriberCount   uint64 `json:"subscriber_count"`
	SubscriptionCount uint64 `json:"subscription_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

func ToChannelProfileResponse(row *repository.ChannelProfileRow) ChannelProfileResponse {
	return ChannelProfileResponse{
		ID:                row.ID,
		Username:          row.Username,
		Email:             row.Email,
		ProfileImageURL:   row.ProfileImageURL,
		SubscriberCount:   row.SubscriberCount,
		SubscriptionCount: row.SubscriptionCount,
		IsSubscribed:      row.IsSubscribed,
	}
}

// WatchHistoryResponse 观看历史里的一条：视频 + 作者 + 看的时间
type WatchHistoryResponse struct {
	VideoID      uint64    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoFileURL string    `json:"video_file_url"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	WatchedAt    time.Time `json:"watched_at"`
	Owner        UserInfo  `json:"owner"`
}

func ToWatchHistoryResponses(rows []repository.WatchHistoryRow) []WatchHistoryResponse {
	responses := make([]WatchHistoryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, WatchHistoryResponse{
			VideoID:      row.VideoID,
			Title:        row.Title,
			Description:  row.Description,
			ThumbnailURL: row.ThumbnailURL,
			VideoFileURL: row.VideoFileURL,
			Duration:     row.Duration,
			Views:        row.Views,
			CreatedAt:    row.VideoCreatedAt,
			WatchedAt:    row.WatchedAt,
			Owner: UserInfo{
				ID:              row.OwnerID,
				Username:        row.OwnerUsername,
				ProfileImageURL: row.OwnerProfileImageURL,
			},
		})
	}
	return responses
}
