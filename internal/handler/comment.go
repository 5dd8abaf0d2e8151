package handler

import (
	"net/http"
	"strconv"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	AddComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
	GetVideoComments(c *gin.Context)
	GetMyComments(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type commentContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *commentHandler) AddComment(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	comment, err := h.CommentService.AddComment(userID, videoID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusCreated, dto.ToCommentResponse(comment), "评论成功")
}

func (h *commentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	comment, err := h.CommentService.UpdateComment(commentID, userID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToCommentResponse(comment), "评论更新成功")
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(commentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "评论删除成功")
}

// 分页取视频评论，page从1开始
func (h *commentHandler) GetVideoComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	viewerID, ok := mustUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.CommentService.GetVideoComments(videoID, viewerID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToCommentRowResponses(rows), "成功获取评论列表")
}

func (h *commentHandler) GetMyComments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	comments, err := h.CommentService.GetUserComments(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.ToCommentResponse(&comments[i]))
	}
	sendSuccessResponse(c, http.StatusOK, responses, "成功获取我的评论")
}
