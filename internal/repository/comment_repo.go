package repository

import (
	"time"

	"Lyra_Tube/internal/model"

	"gorm.io/gorm"
)

// CommentRow 是视频评论列表读模型的投影结果：评论 + 作者 + 点赞数 + viewer是否点赞
type CommentRow struct {
	ID                   uint64
	CreatedAt            time.Time
	Content              string
	VideoID              uint64
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
	LikeCount            uint64
	IsLiked              bool
}

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)
	UpdateContent(commentID uint64, content string) (*model.Comment, error)
	Delete(commentID uint64) error

	// 分页获取一个视频的评论，最新的在前
	GetVideoComments(videoID, viewerID uint64, offset, limit int) ([]CommentRow, error)
	GetUserComments(ownerID uint64) ([]model.Comment, error)

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、绑定到事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// 利用commentID找comment，并把Owner也Preload进去
func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("Owner").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *commentRepository) UpdateContent(commentID uint64, content string) (*model.Comment, error) {
	if err := r.db.Model(&model.Comment{}).Where("id = ?", commentID).
		Update("content", content).Error; err != nil {
		return nil, err
	}
	return r.FindByID(commentID)
}

func (r *commentRepository) Delete(commentID uint64) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}

// GetVideoComments 评论列表读模型：按视频过滤 → join作者 → 叠加点赞数/是否点赞阶段 → 分页
func (r *commentRepository) GetVideoComments(videoID, viewerID uint64, offset, limit int) ([]CommentRow, error) {
	var rows []CommentRow
	err := r.db.Model(&model.Comment{}).
		Select(`comments.id, comments.created_at, comments.content, comments.video_id,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url,
			(?) AS like_count, (?) AS is_liked`,
			likeCountSubquery(r.db, model.LikeTargetComment, "comments.id"),
			isLikedSubquery(r.db, model.LikeTargetComment, "comments.id", viewerID)).
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at desc").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *commentRepository) GetUserComments(ownerID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}
