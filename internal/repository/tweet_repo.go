package repository

import (
	"time"

	"Lyra_Tube/internal/model"

	"gorm.io/gorm"
)

// TweetRow 是推文读模型的投影结果：推文 + 作者 + 点赞数 + viewer是否点赞
type TweetRow struct {
	ID                   uint64
	CreatedAt            time.Time
	Content              string
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
	LikeCount            uint64
	IsLiked              bool
}

type TweetRepository interface {
	Create(tweet *model.Tweet) error
	FindByID(tweetID uint64) (*model.Tweet, error)
	UpdateContent(tweetID uint64, content string) (*model.Tweet, error)
	Delete(tweetID uint64) error

	GetTweetDetail(tweetID, viewerID uint64) (*TweetRow, error)
	GetUserTweets(ownerID, viewerID uint64) ([]TweetRow, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.Preload("Owner").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tweetRepository) UpdateContent(tweetID uint64, content string) (*model.Tweet, error) {
	if err := r.db.Model(&model.Tweet{}).Where("id = ?", tweetID).
		Update("content", content).Error; err != nil {
		return nil, err
	}
	return r.FindByID(tweetID)
}

func (r *tweetRepository) Delete(tweetID uint64) error {
	return r.db.Delete(&model.Tweet{}, tweetID).Error
}

// tweetRowQuery 推文读模型的公共部分：join作者 + 点赞数/是否点赞两个阶段
func (r *tweetRepository) tweetRowQuery(viewerID uint64) *gorm.DB {
	return r.db.Model(&model.Tweet{}).
		Select(`tweets.id, tweets.created_at, tweets.content,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url,
			(?) AS like_count, (?) AS is_liked`,
			likeCountSubquery(r.db, model.LikeTargetTweet, "tweets.id"),
			isLikedSubquery(r.db, model.LikeTargetTweet, "tweets.id", viewerID)).
		Joins("JOIN users ON users.id = tweets.owner_id")
}

func (r *tweetRepository) GetTweetDetail(tweetID, viewerID uint64) (*TweetRow, error) {
	var row TweetRow
	err := r.tweetRowQuery(viewerID).
		Where("tweets.id = ?", tweetID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tweetRepository) GetUserTweets(ownerID, viewerID uint64) ([]TweetRow, error) {
	var rows []TweetRow
	err := r.tweetRowQuery(viewerID).
		Where("tweets.owner_id = ?", ownerID).
		Order("tweets.created_at desc").
		Scan(&rows).Error
	return rows, err
}
