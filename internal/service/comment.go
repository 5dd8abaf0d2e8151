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

const (
	defaultCommentPageSize = 10
	maxCommentPageSize     = 100
)

// CommentService 视频评论的增删改查，分页列表带点赞聚合
type CommentService interface {
	AddComment(userID, videoID uint64, content string) (*model.Comment, error)
	UpdateComment(commentID, userID uint64, content string) (*model.Comment, error)
	DeleteComment(commentID, userID uint64) error
	GetVideoComments(videoID, viewerID uint64, page, limit int) ([]repository.CommentRow, error)
	GetUserComments(ownerID uint64) ([]model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// AddComment 发评论：1、内容去空白后不能为空 2、目标视频必须存在 3、入库
func (s *commentService) AddComment(userID, videoID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "评论内容不能为空")
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// mustOwnComment 加载评论并校验归属
func (s *commentService) mustOwnComment(commentID, userID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "评论不存在")
		}
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, apierr.New(http.StatusForbidden, "无权操作他人的评论")
	}
	return comment, nil
}

func (s *commentService) UpdateComment(commentID, userID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "评论内容不能为空")
	}

	if _, err := s.mustOwnComment(commentID, userID); err != nil {
		return nil, err
	}
	return s.commentRepo.UpdateContent(commentID, content)
}

func (s *commentService) DeleteComment(commentID, userID uint64) error {
	if _, err := s.mustOwnComment(commentID, userID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

// GetVideoComments 分页取视频评论，page从1开始，limit钳到上限
func (s *commentService) GetVideoComments(videoID, viewerID uint64, page, limit int) ([]repository.CommentRow, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultCommentPageSize
	}
	if limit > maxCommentPageSize {
		limit = maxCommentPageSize
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}

	return s.commentRepo.GetVideoComments(videoID, viewerID, (page-1)*limit, limit)
}

func (s *commentService) GetUserComments(ownerID uint64) ([]model.Comment, error) {
	return s.commentRepo.GetUserComments(ownerID)
}
