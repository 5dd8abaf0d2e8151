package dto

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

// PlaylistResponse 是播放列表的基础响应结构
type PlaylistResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
}

// PlaylistSummaryResponse 列表页的一条，带视频数和总播放量聚合
type PlaylistSummaryResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TotalVideos uint64    `json:"total_videos"`
	TotalViews  uint64    `json:"total_views"`
}

func ToPlaylistSummaryResponses(rows []repository.PlaylistSummaryRow) []PlaylistSummaryResponse {
	responses := make([]PlaylistSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, PlaylistSummaryResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
			TotalVideos: row.TotalVideos,
			TotalViews:  row.TotalViews,
		})
	}
	return responses
}

type PlaylistVideoResponse struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoFileURL string    `json:"video_file_url"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlaylistDetailResponse 详情页：元信息 + 作者 + 按位置排好的已发布视频
type PlaylistDetailResponse struct {
	ID          uint64                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	TotalVideos uint64                  `json:"total_videos"`
	TotalViews  uint64                  `json:"total_views"`
	Owner       UserInfo                `json:"owner"`
	Videos      []PlaylistVideoResponse `json:"videos"`
}

func ToPlaylistDetailResponse(row *repository.PlaylistDetailRow) PlaylistDetailResponse {
	videos := make([]PlaylistVideoResponse, 0, len(row.Videos))
	for _, v := range row.Videos {
		videos = append(videos, PlaylistVideoResponse{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			ThumbnailURL: v.ThumbnailURL,
			VideoFileURL: v.VideoFileURL,
			Duration:     v.Duration,
			Views:        v.Views,
			CreatedAt:    v.CreatedAt,
		})
	}
	return PlaylistDetailResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		TotalVideos: row.TotalVideos,
		TotalViews:  row.TotalViews,
		Owner: UserInfo{
			ID:              row.OwnerID,
			Username:        row.OwnerUsername,
			ProfileImageURL: row.OwnerProfileImageURL,
		},
		Videos: videos,
	}
}
