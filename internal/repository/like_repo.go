package repository

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikedVideoRow 是"我点赞过的视频"读模型的投影结果
type LikedVideoRow struct {
	VideoID              uint64
	Title                string
	Description          string
	ThumbnailURL         string
	VideoFileURL         string
	Duration             float64
	Views                uint64
	LikedAt              time.Time
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
}

// LikedCommentRow 是"我点赞过的评论"读模型的投影结果
type LikedCommentRow struct {
	CommentID            uint64
	Content              string
	VideoID              uint64
	LikedAt              time.Time
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
}

// LikedTweetRow 是"我点赞过的推文"读模型的投影结果
type LikedTweetRow struct {
	TweetID              uint64
	Content              string
	LikedAt              time.Time
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
}

type LikeRepository interface {
	// Toggle 原子翻转点赞状态，返回翻转后的状态：true=已点赞，false=已取消
	Toggle(userID uint64, targetKind string, targetID uint64) (bool, error)

	GetLikedVideos(userID uint64) ([]LikedVideoRow, error)
	GetLikedComments(userID uint64) ([]LikedCommentRow, error)
	GetLikedTweets(userID uint64) ([]LikedTweetRow, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle 不用"先查后插"：先无脑INSERT，靠(user_id, target_kind, target_id)唯一索引查重，
// OnConflict DoNothing时RowsAffected为0，说明记录已存在，转为DELETE。
// 两步各自都是原子的，并发下不会插出重复行
func (r *likeRepository) Toggle(userID uint64, targetKind string, targetID uint64) (bool, error) {
	like := &model.Like{UserID: userID, TargetKind: targetKind, TargetID: targetID}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_kind"}, {Name: "target_id"}},
		DoNothing: true,
	}).Create(like)
	if result.Error != nil {
		logger.Log.WithError(result.Error).Error("MySQL点赞插入操作失败")
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// 已存在，转为取消。gorm的Where+Delete对软删除模型会走UPDATE，这里要的是物理删除，直接写SQL
	delResult := r.db.Exec("DELETE FROM likes WHERE user_id = ? AND target_kind = ? AND target_id = ?",
		userID, targetKind, targetID)
	if delResult.Error != nil {
		logger.Log.WithError(delResult.Error).Error("MySQL点赞删除操作失败")
		return false, delResult.Error
	}
	return false, nil
}

// GetLikedVideos 点赞过的视频：按(user, kind=video)过滤likes → join视频 → join视频作者
func (r *likeRepository) GetLikedVideos(userID uint64) ([]LikedVideoRow, error) {
	var rows []LikedVideoRow
	err := r.db.Model(&model.Like{}).
		Select(`likes.target_id AS video_id, videos.title, videos.description,
			videos.thumbnail_url, videos.video_file_url, videos.duration, videos.views,
			likes.created_at AS liked_at,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url`).
		Joins("JOIN videos ON videos.id = likes.target_id AND videos.deleted_at IS NULL").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("likes.user_id = ? AND likes.target_kind = ?", userID, model.LikeTargetVideo).
		Order("likes.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *likeRepository) GetLikedComments(userID uint64) ([]LikedCommentRow, error) {
	var rows []LikedCommentRow
	err := r.db.Model(&model.Like{}).
		Select(`likes.target_id AS comment_id, comments.content, comments.video_id,
			likes.created_at AS liked_at,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url`).
		Joins("JOIN comments ON comments.id = likes.target_id AND comments.deleted_at IS NULL").
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("likes.user_id = ? AND likes.target_kind = ?", userID, model.LikeTargetComment).
		Order("likes.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *likeRepository) GetLikedTweets(userID uint64) ([]LikedTweetRow, error) {
	var rows []LikedTweetRow
	err := r.db.Model(&model.Like{}).
		Select(`likes.target_id AS tweet_id, tweets.content,
			likes.created_at AS liked_at,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url`).
		Joins("JOIN tweets ON tweets.id = likes.target_id AND tweets.deleted_at IS NULL").
		Joins("JOIN users ON users.id = tweets.owner_id").
		Where("likes.user_id = ? AND likes.target_kind = ?", userID, model.LikeTargetTweet).
		Order("likes.created_at desc").
		Scan(&rows).Error
	return rows, err
}
