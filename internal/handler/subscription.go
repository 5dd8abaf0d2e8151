package handler

import (
	"net/http"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	ToggleSubscription(c *gin.Context)
	GetChannelSubscribers(c *gin.Context)
	GetSubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

func (h *subscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channel_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subscribed, err := h.SubscriptionService.ToggleSubscription(userID, channelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "已退订"
	if subscribed {
		message = "订阅成功"
	}
	sendSuccessResponse(c, http.StatusOK, gin.H{"is_subscribed": subscribed}, message)
}

func (h *subscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channel_id")
	if !ok {
		return
	}
	if _, ok := mustUserID(c); !ok {
		return
	}

	rows, err := h.SubscriptionService.GetChannelSubscribers(channelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToSubscriberResponses(rows), "成功获取粉丝列表")
}

func (h *subscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	subscriberID, ok := parseIDParam(c, "subscriber_id")
	if !ok {
		return
	}

	rows, err := h.SubscriptionService.GetSubscribedChannels(subscriberID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToSubscribedChannelResponses(rows), "成功获取关注的频道")
}
