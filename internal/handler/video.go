package handler

import (
	"net/http"
	"strconv"

	"Lyra_Tube/internal/dto"
	"Lyra_Tube/internal/service"
	"Lyra_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	PublishVideo(c *gin.Context)
	GetVideoDetail(c *gin.Context)
	GetFeed(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

// parseIDParam 解析路径里的数字ID
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(c, http.StatusBadRequest, "无效的ID参数")
		return 0, false
	}
	return id, true
}

// 投稿：1、解析multipart表单，视频文件和封面都必填 2、service层两次上传+入库 3、dto返回
func (h *videoHandler) PublishVideo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string  `form:"title" binding:"required"`
		Description string  `form:"description"`
		Duration    float64 `form:"duration"`
	}
	if err := c.ShouldBind(&req); err != nil {
		sendErrorResponse(c, http.StatusUnprocessableEntity, "无效的参数", err.Error())
		return
	}

	videoHeader, err := c.FormFile("video_file")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "请求未包含视频文件")
		return
	}
	thumbHeader, err := c.FormFile("thumbnail")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "请求未包含封面文件")
		return
	}

	videoFile, err := videoHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "视频文件读取失败")
		return
	}
	defer videoFile.Close()

	thumbFile, err := thumbHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "封面文件读取失败")
		return
	}
	defer thumbFile.Close()

	logCtx := logger.Log.WithField("owner_id", userID)
	logCtx.Info("开始处理视频投稿请求")

	video, err := h.VideoService.Publish(userID, req.Title, req.Description, req.Duration,
		videoFile, videoHeader.Filename, thumbFile, thumbHeader.Filename)
	if err != nil {
		logCtx.WithError(err).Error("视频投稿失败")
		handleServiceError(c, err)
		return
	}

	logCtx.WithField("video_id", video.ID).Info("视频投稿成功")
	sendSuccessResponse(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

// 视频详情：聚合读模型 + 异步播放计数
func (h *videoHandler) GetVideoDetail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	viewerID, ok := mustUserID(c)
	if !ok {
		return
	}

	detail, err := h.VideoService.GetVideoDetail(videoID, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToVideoDetailResponse(detail), "成功获取视频详情")
}

// Feed流：最新的已发布视频，limit由查询参数控制
func (h *videoHandler) GetFeed(c *gin.Context) {
	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP())

	limit, _ := strconv.ParseUint(c.DefaultQuery("limit", "20"), 10, 64)

	videos, err := h.VideoService.GetFeed(limit)
	if err != nil {
		logCtx.WithError(err).Error("获取Feed流业务处理失败")
		handleServiceError(c, err)
		return
	}

	response := dto.ToVideoResponses(videos)
	logCtx.WithField("count", len(response)).Info("成功获取Feed流")
	sendSuccessResponse(c, http.StatusOK, response, "成功获取视频流")
}

// 编辑视频：标题/简介来自表单，封面可选替换
func (h *videoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	thumbnail, filename, err := openOptionalFile(c, "thumbnail")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "封面文件读取失败")
		return
	}
	if thumbnail != nil {
		defer thumbnail.Close()
	}

	video, err := h.VideoService.UpdateVideo(videoID, userID, title, description, thumbnail, filename)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, dto.ToVideoResponse(video), "视频更新成功")
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.VideoService.DeleteVideo(videoID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, nil, "视频删除成功")
}

func (h *videoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	isPublished, err := h.VideoService.TogglePublish(videoID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessResponse(c, http.StatusOK, gin.H{"is_published": isPublished}, "发布状态已切换")
}
