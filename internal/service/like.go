package service

import (
	"errors"
	"net/http"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"

	"gorm.io/gorm"
)

// LikeService 点赞开关（视频/评论/推文三类目标）+ 已赞列表
type LikeService interface {
	ToggleVideoLike(userID, videoID uint64) (bool, error)
	ToggleCommentLike(userID, commentID uint64) (bool, error)
	ToggleTweetLike(userID, tweetID uint64) (bool, error)
	GetLikedVideos(userID uint64) ([]repository.LikedVideoRow, error)
	GetLikedComments(userID uint64) ([]repository.LikedCommentRow, error)
	GetLikedTweets(userID uint64) ([]repository.LikedTweetRow, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo}
}

// ToggleVideoLike 点赞开关：先确认目标存在，再由唯一索引保证原子的插入或删除
func (s *likeService) ToggleVideoLike(userID, videoID uint64) (bool, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierr.New(http.StatusNotFound, "视频不存在")
		}
		return false, err
	}
	return s.likeRepo.Toggle(userID, model.LikeTargetVideo, videoID)
}

func (s *likeService) ToggleCommentLike(userID, commentID uint64) (bool, error) {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierr.New(http.StatusNotFound, "评论不存在")
		}
		return false, err
	}
	return s.likeRepo.Toggle(userID, model.LikeTargetComment, commentID)
}

func (s *likeService) ToggleTweetLike(userID, tweetID uint64) (bool, error) {
	if _, err := s.tweetRepo.FindByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierr.New(http.StatusNotFound, "推文不存在")
		}
		return false, err
	}
	return s.likeRepo.Toggle(userID, model.LikeTargetTweet, tweetID)
}

func (s *likeService) GetLikedVideos(userID uint64) ([]repository.LikedVideoRow, error) {
	return s.likeRepo.GetLikedVideos(userID)
}

func (s *likeService) GetLikedComments(userID uint64) ([]repository.LikedCommentRow, error) {
	return s.likeRepo.GetLikedComments(userID)
}

func (s *likeService) GetLikedTweets(userID uint64) ([]repository.LikedTweetRow, error) {
	return s.likeRepo.GetLikedTweets(userID)
}
