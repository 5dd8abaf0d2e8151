package dto

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

// CommentResponse 是评论的响应结构，列表场景下带点赞聚合
type CommentResponse struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	VideoID   uint64    `json:"video_id"`
	LikeCount uint64    `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	Owner     UserInfo  `json:"owner"`
}

// ToCommentResponse 用在刚写入的评论上，此时聚合字段必然为零
func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		Content:   comment.Content,
		VideoID:   comment.VideoID,
	}
	if comment.Owner.ID != 0 {
		resp.Owner = UserInfo{
			ID:              comment.Owner.ID,
			Username:        comment.Owner.Username,
			ProfileImageURL: comment.Owner.ProfileImageURL,
		}
	} else {
		resp.Owner.ID = comment.OwnerID
	}
	return resp
}

func ToCommentRowResponses(rows []repository.CommentRow) []CommentResponse {
	responses := make([]CommentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, CommentResponse{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			Content:   row.Content,
			VideoID:   row.VideoID,
			LikeCount: row.LikeCount,
			IsLiked:   row.IsLiked,
			Owner: UserInfo{
				ID:              row.OwnerID,
				Username:        row.OwnerUsername,
				ProfileImageURL: row.OwnerProfileImageURL,
			},
		})
	}
	return responses
}
