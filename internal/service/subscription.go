package service

import (
	"errors"
	"net/http"

	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"

	"gorm.io/gorm"
)

// SubscriptionService 订阅开关 + 粉丝列表 + 关注的频道列表
type SubscriptionService interface {
	ToggleSubscription(subscriberID, channelID uint64) (bool, error)
	GetChannelSubscribers(channelID uint64) ([]repository.SubscriberRow, error)
	GetSubscribedChannels(subscriberID uint64) ([]repository.SubscribedChannelRow, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// ToggleSubscription 订阅开关：1、不允许订阅自己 2、目标频道必须存在 3、唯一索引保证原子插入或删除
func (s *subscriptionService) ToggleSubscription(subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, apierr.New(http.StatusBadRequest, "不能订阅自己的频道")
	}

	if _, err := s.userRepo.FindByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierr.New(http.StatusNotFound, "频道不存在")
		}
		return false, err
	}

	return s.subRepo.Toggle(subscriberID, channelID)
}

func (s *subscriptionService) GetChannelSubscribers(channelID uint64) ([]repository.SubscriberRow, error) {
	if _, err := s.userRepo.FindByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "频道不存在")
		}
		return nil, err
	}
	return s.subRepo.GetChannelSubscribers(channelID)
}

func (s *subscriptionService) GetSubscribedChannels(subscriberID uint64) ([]repository.SubscribedChannelRow, error) {
	return s.subRepo.GetSubscribedChannels(subscriberID)
}
