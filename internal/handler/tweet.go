package handler

import (
	"net/http"
	"strconv"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	CreateTweet(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
	GetTweetDetail(c *gin.Context)
	GetUserTweets(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type tweetContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *tweetHandler) CreateTweet(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req tweetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	tweet, err := h.TweetService.CreateTweet(userID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusCreated, dto.ToTweetResponse(tweet), "推文发布成功")
}

func (h *tweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req tweetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	tweet, err := h.TweetService.UpdateTweet(tweetID, userID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToTweetResponse(tweet), "推文更新成功")
}

func (h *tweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.TweetService.DeleteTweet(tweetID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "推文删除成功")
}

func (h *tweetHandler) GetTweetDetail(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	viewerID, ok := mustUserID(c)
	if !ok {
		return
	}

	row, err := h.TweetService.GetTweetDetail(tweetID, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToTweetRowResponse(row), "成功获取推文")
}

// GetUserTweets 查某用户的推文，user_id缺省为当前用户
func (h *tweetHandler) GetUserTweets(c *gin.Context) {
	viewerID, ok := mustUserID(c)
	if !ok {
		return
	}

	targetID := viewerID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			sendErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
			return
		}
		targetID = parsed
	}

	rows, err := h.TweetService.GetUserTweets(targetID, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToTweetRowResponses(rows), "成功获取推文列表")
}
