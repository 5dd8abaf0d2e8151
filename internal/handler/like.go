package handler

import (
	"net/http"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetLikedVideos(c *gin.Context)
	GetLikedComments(c *gin.Context)
	GetLikedTweets(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

// 点赞开关的响应只有一个布尔：翻转后的状态
func respondToggle(c *gin.Context, liked bool) {
	message := "已取消点赞"
	if liked {
		message = "点赞成功"
	}
	sendSuccessResponse(c, http.StatusOK, gin.H{"is_liked": liked}, message)
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	liked, err := h.LikeService.ToggleVideoLike(userID, videoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondToggle(c, liked)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	liked, err := h.LikeService.ToggleCommentLike(userID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondToggle(c, liked)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	liked, err := h.LikeService.ToggleTweetLike(userID, tweetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondToggle(c, liked)
}

func (h *likeHandler) GetLikedVideos(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	rows, err := h.LikeService.GetLikedVideos(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToLikedVideoResponses(rows), "成功获取点赞过的视频")
}

func (h *likeHandler) GetLikedComments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	rows, err := h.LikeService.GetLikedComments(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToLikedCommentResponses(rows), "成功获取点赞过的评论")
}

func (h *likeHandler) GetLikedTweets(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	rows, err := h.LikeService.GetLikedTweets(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToLikedTweetResponses(rows), "成功获取点赞过的推文")
}
