package dto

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

// TweetResponse 是推文的响应结构，列表和详情场景下带点赞聚合
type TweetResponse struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	LikeCount uint64    `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	Owner     UserInfo  `json:"owner"`
}

// ToTweetResponse 用在刚写入的推文上，此时聚合字段必然为零
func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	resp := TweetResponse{
		ID:        tweet.ID,
		CreatedAt: tweet.CreatedAt,
		Content:   tweet.Content,
	}
	if tweet.Owner.ID != 0 {
		resp.Owner = UserInfo{
			ID:              tweet.Owner.ID,
			Username:        tweet.Owner.Username,
			ProfileImageURL: tweet.Owner.ProfileImageURL,
		}
	} else {
		resp.Owner.ID = tweet.OwnerID
	}
	return resp
}

func ToTweetRowResponse(row *repository.TweetRow) TweetResponse {
	return TweetResponse{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Content:   row.Content,
		LikeCount: row.LikeCount,
		IsLiked:   row.IsLiked,
		Owner: UserInfo{
			ID:              row.OwnerID,
			Username:        row.OwnerUsername,
			ProfileImageURL: row.OwnerProfileImageURL,
		},
	}
}

func ToTweetRowResponses(rows []repository.TweetRow) []TweetResponse {
	responses := make([]TweetResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, ToTweetRowResponse(&rows[i]))
	}
	return responses
}
