package service

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"
	"Lyra_Tube/pkg/logger"
	"Lyra_Tube/pkg/storage"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const maxFeedLimit = 50

// VideoService 视频全生命周期：投稿、详情（带播放事件）、feed流、编辑、删除、发布开关
type VideoService interface {
	Publish(ownerID uint64, title, description string, duration float64, videoFile io.Reader, videoFilename string, thumbnail io.Reader, thumbnailFilename string) (*model.Video, error)
	GetVideoDetail(videoID, viewerID uint64) (*repository.VideoDetailRow, error)
	GetFeed(limit uint64) ([]model.Video, error)
	UpdateVideo(videoID, userID uint64, title, description string, thumbnail io.Reader, thumbnailFilename string) (*model.Video, error)
	DeleteVideo(videoID, userID uint64) error
	TogglePublish(videoID, userID uint64) (bool, error)
}

type videoService struct {
	videoRepo repository.VideoRepository
	blobStore storage.BlobStore
	publisher ViewPublisher
	sf        singleflight.Group
}

func NewVideoService(videoRepo repository.VideoRepository, blobStore storage.BlobStore, publisher ViewPublisher) VideoService {
	return &videoService{videoRepo: videoRepo, blobStore: blobStore, publisher: publisher}
}

// Publish 投稿：1、视频文件和封面两次上传 2、任一失败则尽力回收已传的对象 3、默认已发布入库
func (s *videoService) Publish(ownerID uint64, title, description string, duration float64, videoFile io.Reader, videoFilename string, thumbnail io.Reader, thumbnailFilename string) (*model.Video, error) {
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "标题不能为空")
	}

	uploadedVideo, err := s.blobStore.Upload(videoFile, videoFilename)
	if err != nil {
		logger.Log.WithError(err).Error("视频文件上传失败")
		return nil, apierr.New(http.StatusBadRequest, "视频文件上传失败")
	}

	uploadedThumb, err := s.blobStore.Upload(thumbnail, thumbnailFilename)
	if err != nil {
		logger.Log.WithError(err).Error("封面上传失败")
		// 回收已经传上去的视频文件，失败只记日志
		if delErr := s.blobStore.Delete(uploadedVideo.Key); delErr != nil {
			logger.Log.WithError(delErr).WithField("key", uploadedVideo.Key).Warn("回收视频文件失败，遗留孤儿对象")
		}
		return nil, apierr.New(http.StatusBadRequest, "封面上传失败")
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		Duration:     duration,
		IsPublished:  true,
		VideoFileURL: uploadedVideo.URL,
		VideoFileKey: uploadedVideo.Key,
		ThumbnailURL: uploadedThumb.URL,
		ThumbnailKey: uploadedThumb.Key,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

// GetVideoDetail 视频详情：1、singleflight合并同一视频的并发查询，防缓存击穿
// 2、未发布的视频只有作者本人可见 3、成功后发一条播放事件，投递失败不影响本次响应
func (s *videoService) GetVideoDetail(videoID, viewerID uint64) (*repository.VideoDetailRow, error) {
	key := fmt.Sprintf("video_detail:%d:%d", videoID, viewerID)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.videoRepo.GetVideoDetail(videoID, viewerID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}
	detail := v.(*repository.VideoDetailRow)

	if !detail.IsPublished && detail.OwnerID != viewerID {
		return nil, apierr.New(http.StatusNotFound, "视频不存在")
	}

	if s.publisher != nil {
		if err := s.publisher.PublishView(ViewMessage{UserID: viewerID, VideoID: videoID}); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("播放事件投递失败，本次播放不计数")
		}
	}

	return detail, nil
}

// GetFeed 最新已发布视频列表，limit超上限时钳到上限
func (s *videoService) GetFeed(limit uint64) ([]model.Video, error) {
	if limit == 0 || limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.videoRepo.FindLatest(limit)
}

// mustOwnVideo 加载视频并校验归属，非作者一律403
func (s *videoService) mustOwnVideo(videoID, userID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByIDForUpdate(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, apierr.New(http.StatusForbidden, "无权操作他人的视频")
	}
	return video, nil
}

// UpdateVideo 编辑标题/简介/封面：换封面时先传新的再尽力删旧的
func (s *videoService) UpdateVideo(videoID, userID uint64, title, description string, thumbnail io.Reader, thumbnailFilename string) (*model.Video, error) {
	video, err := s.mustOwnVideo(videoID, userID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		video.Title = title
	}
	if description != "" {
		video.Description = description
	}

	oldThumbKey := ""
	if thumbnail != nil {
		uploaded, err := s.blobStore.Upload(thumbnail, thumbnailFilename)
		if err != nil {
			logger.Log.WithError(err).Error("封面上传失败")
			return nil, apierr.New(http.StatusBadRequest, "封面上传失败")
		}
		oldThumbKey = video.ThumbnailKey
		video.ThumbnailURL = uploaded.URL
		video.ThumbnailKey = uploaded.Key
	}

	if err := s.videoRepo.Save(video); err != nil {
		return nil, err
	}

	if oldThumbKey != "" {
		if err := s.blobStore.Delete(oldThumbKey); err != nil {
			logger.Log.WithError(err).WithField("key", oldThumbKey).Warn("旧封面删除失败，遗留孤儿对象")
		}
	}
	return video, nil
}

// DeleteVideo 删稿：先删库（软删），再尽力回收对象存储里的视频文件和封面
func (s *videoService) DeleteVideo(videoID, userID uint64) error {
	video, err := s.mustOwnVideo(videoID, userID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		return err
	}

	for _, key := range []string{video.VideoFileKey, video.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.blobStore.Delete(key); err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("对象回收失败，遗留孤儿对象")
		}
	}
	return nil
}

// TogglePublish 发布状态取反，返回新状态
func (s *videoService) TogglePublish(videoID, userID uint64) (bool, error) {
	video, err := s.mustOwnVideo(videoID, userID)
	if err != nil {
		return false, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Save(video); err != nil {
		return false, err
	}
	return video.IsPublished, nil
}
