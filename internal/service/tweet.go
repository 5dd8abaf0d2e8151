package service

import (
	"errors"
	"net/http"
	"strings"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"

	"gorm.io/gorm"
)

// TweetService 推文（频道动态）的增删改查
type TweetService interface {
	CreateTweet(ownerID uint64, content string) (*model.Tweet, error)
	UpdateTweet(tweetID, userID uint64, content string) (*model.Tweet, error)
	DeleteTweet(tweetID, userID uint64) error
	GetTweetDetail(tweetID, viewerID uint64) (*repository.TweetRow, error)
	GetUserTweets(ownerID, viewerID uint64) ([]repository.TweetRow, error)
}

type tweetService struct {
	tweetRepo repository.TweetRepository
}

func NewTweetService(tweetRepo repository.TweetRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo}
}

func (s *tweetService) CreateTweet(ownerID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "推文内容不能为空")
	}

	tweet := &model.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *tweetService) mustOwnTweet(tweetID, userID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "推文不存在")
		}
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, apierr.New(http.StatusForbidden, "无权操作他人的推文")
	}
	return tweet, nil
}

func (s *tweetService) UpdateTweet(tweetID, userID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "推文内容不能为空")
	}

	if _, err := s.mustOwnTweet(tweetID, userID); err != nil {
		return nil, err
	}
	return s.tweetRepo.UpdateContent(tweetID, content)
}

func (s *tweetService) DeleteTweet(tweetID, userID uint64) error {
	if _, err := s.mustOwnTweet(tweetID, userID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(tweetID)
}

func (s *tweetService) GetTweetDetail(tweetID, viewerID uint64) (*repository.TweetRow, error) {
	row, err := s.tweetRepo.GetTweetDetail(tweetID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "推文不存在")
		}
		return nil, err
	}
	return row, nil
}

func (s *tweetService) GetUserTweets(ownerID, viewerID uint64) ([]repository.TweetRow, error) {
	return s.tweetRepo.GetUserTweets(ownerID, viewerID)
}
