package dto

import (
	"time"

	"Lyra_Tube/internal/repository"
)

// LikedVideoResponse 是"我点赞过的视频"里的一条，按点赞时间倒序
type LikedVideoResponse struct {
	VideoID      uint64    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoFileURL string    `json:"video_file_url"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	LikedAt      time.Time `json:"liked_at"`
	Owner        UserInfo  `json:"owner"`
}

func ToLikedVideoResponses(rows []repository.LikedVideoRow) []LikedVideoResponse {
	responses := make([]LikedVideoResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, LikedVideoResponse{
			VideoID:      row.VideoID,
			Title:        row.Title,
			Description:  row.Description,
			ThumbnailURL: row.ThumbnailURL,
			VideoFileURL: row.VideoFileURL,
			Duration:     row.Duration,
			Views:        row.Views,
			LikedAt:      row.LikedAt,
			Owner: UserInfo{
				ID:              row.OwnerID,
				Username:        row.OwnerUsername,
				ProfileImageURL: row.OwnerProfileImageURL,
			},
		})
	}
	return responses
}

type LikedCommentResponse struct {
	CommentID uint64    `json:"comment_id"`
	Content   string    `json:"content"`
	VideoID   uint64    `json:"video_id"`
	LikedAt   time.Time `json:"liked_at"`
	Owner     UserInfo  `json:"owner"`
}

func ToLikedCommentResponses(rows []repository.LikedCommentRow) []LikedCommentResponse {
	responses := make([]LikedCommentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, LikedCommentResponse{
			CommentID: row.CommentID,
			Content:   row.Content,
			VideoID:   row.VideoID,
			LikedAt:   row.LikedAt,
			Owner: UserInfo{
				ID:              row.OwnerID,
				Username:        row.OwnerUsername,
				ProfileImageURL: row.OwnerProfileImageURL,
			},
		})
	}
	return responses
}

type LikedTweetResponse struct {
	TweetID uint64    `json:"tweet_id"`
	Content string    `json:"content"`
	LikedAt time.Time `json:"liked_at"`
	Owner   UserInfo  `json:"owner"`
}

func ToLikedTweetResponses(rows []repository.LikedTweetRow) []LikedTweetResponse {
	responses := make([]LikedTweetResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, LikedTweetResponse{
			TweetID: row.TweetID,
			Content: row.Content,
			LikedAt: row.LikedAt,
			Owner: UserInfo{
				ID:              row.OwnerID,
				Username:        row.OwnerUsername,
				ProfileImageURL: row.OwnerProfileImageURL,
			},
		})
	}
	return responses
}
