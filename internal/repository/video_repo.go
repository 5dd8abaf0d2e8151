package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"Lyra_Tube/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// VideoDetailRow 是单个视频详情页读模型的投影结果：
// 视频本体 + 作者 + 点赞数 + viewer是否点赞 + 作者订阅数 + viewer是否订阅
type VideoDetailRow struct {
	ID                   uint64
	CreatedAt            time.Time
	Title                string
	Description          string
	Duration             float64
	Views                uint64
	IsPublished          bool
	VideoFileURL         string
	ThumbnailURL         string
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
	LikeCount            uint64
	IsLiked              bool
	SubscriberCount      uint64
	IsSubscribed         bool
}

// ChannelVideoRow 是频道视频列表（含后台）读模型的投影结果
type ChannelVideoRow struct {
	ID           uint64
	CreatedAt    time.Time
	Title        string
	Description  string
	Duration     float64
	Views        uint64
	IsPublished  bool
	VideoFileURL string
	ThumbnailURL string
	OwnerID      uint64
	LikeCount    uint64
}

// ChannelStatsRow 是创作者后台统计读模型：视频总数、总播放、总点赞、订阅者数
type ChannelStatsRow struct {
	TotalVideos     uint64
	TotalViews      uint64
	TotalLikes      uint64
	SubscriberCount uint64
}

type VideoRepository interface {
	Create(video *model.Video) error
	// FindByID 走缓存，给存在性检查等读场景用
	FindByID(videoID uint64) (*model.Video, error)
	// FindByIDForUpdate 直查数据库，给改/删前的属主校验用，不碰缓存
	FindByIDForUpdate(videoID uint64) (*model.Video, error)
	Save(video *model.Video) error
	Delete(videoID uint64) error
	FindLatest(limit uint64) ([]model.Video, error)
	// 播放量自增，消费者进程在事务里调用
	IncrementViews(videoID uint64) error

	GetVideoDetail(videoID, viewerID uint64) (*VideoDetailRow, error)
	GetChannelVideos(ownerID uint64, publishedOnly bool) ([]ChannelVideoRow, error)
	GetChannelStats(ownerID uint64) (*ChannelStatsRow, error)

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	DeleteVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个新的、绑定到事务的 videoRepository 实例。事务中不操作缓存
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// FindByID 先读缓存，未命中再查库并回填缓存
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	video, err := r.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	var dbVideo model.Video
	err = r.db.Preload("Owner").First(&dbVideo, videoID).Error
	if err != nil {
		return nil, err // 数据库也没找到，就真的没有了
	}

	_ = r.SetVideoCache(&dbVideo)

	return &dbVideo, nil
}

func (r *videoRepository) FindByIDForUpdate(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Save(video *model.Video) error {
	if err := r.db.Save(video).Error; err != nil {
		return err
	}
	// 写库成功后让缓存失效，下次读取回填新值
	return r.DeleteVideoCache(video.ID)
}

func (r *videoRepository) Delete(videoID uint64) error {
	if err := r.db.Delete(&model.Video{}, videoID).Error; err != nil {
		return err
	}
	return r.DeleteVideoCache(videoID)
}

// FindLatest 按时间倒序查询最新发布的视频列表，Preload作者信息
func (r *videoRepository) FindLatest(limit uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Owner").
		Where("is_published = ?", true).
		Order("created_at desc").
		Limit(int(limit)).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) IncrementViews(videoID uint64) error {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?，表达式更新是原子的
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// GetVideoDetail 视频详情读模型：过滤到单个视频 → join作者 →
// 叠加点赞数/是否点赞/作者订阅数/是否订阅四个子查询阶段 → 投影白名单字段
func (r *videoRepository) GetVideoDetail(videoID, viewerID uint64) (*VideoDetailRow, error) {
	var row VideoDetailRow
	err := r.db.Model(&model.Video{}).
		Select(`videos.id, videos.created_at, videos.title, videos.description,
			videos.duration, videos.views, videos.is_published,
			videos.video_file_url, videos.thumbnail_url,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url,
			(?) AS like_count, (?) AS is_liked, (?) AS subscriber_count, (?) AS is_subscribed`,
			likeCountSubquery(r.db, model.LikeTargetVideo, "videos.id"),
			isLikedSubquery(r.db, model.LikeTargetVideo, "videos.id", viewerID),
			subscriberCountSubquery(r.db, "videos.owner_id"),
			isSubscribedSubquery(r.db, "videos.owner_id", viewerID)).
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.id = ?", videoID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetChannelVideos 频道视频列表：过滤到某作者，叠加点赞数阶段。
// publishedOnly=false时给创作者后台用，未发布的也返回
func (r *videoRepository) GetChannelVideos(ownerID uint64, publishedOnly bool) ([]ChannelVideoRow, error) {
	query := r.db.Model(&model.Video{}).
		Select(`videos.id, videos.created_at, videos.title, videos.description,
			videos.duration, videos.views, videos.is_published,
			videos.video_file_url, videos.thumbnail_url, videos.owner_id,
			(?) AS like_count`,
			likeCountSubquery(r.db, model.LikeTargetVideo, "videos.id")).
		Where("videos.owner_id = ?", ownerID)
	if publishedOnly {
		query = query.Where("videos.is_published = ?", true)
	}

	var rows []ChannelVideoRow
	err := query.Order("videos.created_at desc").Scan(&rows).Error
	return rows, err
}

// GetChannelStats 创作者后台统计：一条SQL聚合出视频数/总播放/总点赞/订阅者数
func (r *videoRepository) GetChannelStats(ownerID uint64) (*ChannelStatsRow, error) {
	totalLikes := r.db.Model(&model.Like{}).
		Select("COUNT(*)").
		Where("likes.target_kind = ?", model.LikeTargetVideo).
		Where("likes.target_id IN (?)",
			r.db.Model(&model.Video{}).Select("videos.id").Where("videos.owner_id = ?", ownerID))

	subscriberCount := r.db.Model(&model.Subscription{}).
		Select("COUNT(*)").
		Where("subscriptions.channel_id = ?", ownerID)

	var row ChannelStatsRow
	err := r.db.Model(&model.Video{}).
		Select(`COUNT(*) AS total_videos, COALESCE(SUM(videos.views), 0) AS total_views,
			(?) AS total_likes, (?) AS subscriber_count`, totalLikes, subscriberCount).
		Where("videos.owner_id = ?", ownerID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// GetVideoCache 从Redis缓存中获取单个Video信息。rdb为nil时（事务内/消费者进程）视为未命中
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，但Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// SetVideoCache 将单个视频信息序列化后写入Redis，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), key, videoJSON, expiration).Err()
}

func (r *videoRepository) DeleteVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
