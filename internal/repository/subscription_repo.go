package repository

import (
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriberRow 是频道订阅者列表读模型的投影结果：
// 订阅者 + 订阅者自己的订阅者数 + 频道是否反向订阅了对方
type SubscriberRow struct {
	SubscriberID             uint64
	Username                 string
	ProfileImageURL          string
	SubscriberCount          uint64
	IsSubscribedToSubscriber bool
}

// LatestVideoRow 是"已订阅频道"读模型里挂载的频道最新视频
type LatestVideoRow struct {
	ID           uint64
	Title        string
	Description  string
	ThumbnailURL string
	VideoFileURL string
	Duration     float64
	Views        uint64
	CreatedAt    time.Time
}

// SubscribedChannelRow 是"我订阅的频道"读模型的投影结果
type SubscribedChannelRow struct {
	ChannelID       uint64
	Username        string
	ProfileImageURL string
	SubscriberCount uint64
	LatestVideo     *LatestVideoRow
}

type SubscriptionRepository interface {
	// Toggle 原子翻转订阅状态，返回翻转后的状态：true=已订阅，false=已退订
	Toggle(subscriberID, channelID uint64) (bool, error)

	GetChannelSubscribers(channelID uint64) ([]SubscriberRow, error)
	GetSubscribedChannels(subscriberID uint64) ([]SubscribedChannelRow, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle 与点赞同一套路：INSERT靠唯一索引查重，冲突则转DELETE，避免先查后插的竞态
func (r *subscriptionRepository) Toggle(subscriberID, channelID uint64) (bool, error) {
	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
		DoNothing: true,
	}).Create(sub)
	if result.Error != nil {
		logger.Log.WithError(result.Error).Error("MySQL订阅插入操作失败")
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	delResult := r.db.Exec("DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?",
		subscriberID, channelID)
	if delResult.Error != nil {
		logger.Log.WithError(delResult.Error).Error("MySQL订阅删除操作失败")
		return false, delResult.Error
	}
	return false, nil
}

// GetChannelSubscribers 订阅者列表读模型：按频道过滤 → join订阅者 →
// 叠加"订阅者自己的订阅者数"和"频道是否反向订阅了对方"两个阶段
func (r *subscriptionRepository) GetChannelSubscribers(channelID uint64) ([]SubscriberRow, error) {
	backSubscribed := r.db.Model(&model.Subscription{}).
		Select("COUNT(*) > 0").
		Where("subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", channelID)

	var rows []SubscriberRow
	err := r.db.Table("subscriptions AS s").
		Select(`users.id AS subscriber_id, users.username, users.profile_image_url,
			(?) AS subscriber_count, (?) AS is_subscribed_to_subscriber`,
			subscriberCountSubquery(r.db, "users.id"),
			backSubscribed).
		Joins("JOIN users ON users.id = s.subscriber_id").
		Where("s.channel_id = ? AND s.deleted_at IS NULL", channelID).
		Order("s.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// GetSubscribedChannels 已订阅频道读模型：先投影出频道 + 订阅者数，
// 再按频道ID批量查出各频道最新发布的视频，在内存中挂载，避免N+1查询
func (r *subscriptionRepository) GetSubscribedChannels(subscriberID uint64) ([]SubscribedChannelRow, error) {
	var rows []SubscribedChannelRow
	err := r.db.Table("subscriptions AS s").
		Select(`users.id AS channel_id, users.username, users.profile_image_url,
			(?) AS subscriber_count`,
			subscriberCountSubquery(r.db, "users.id")).
		Joins("JOIN users ON users.id = s.channel_id").
		Where("s.subscriber_id = ? AND s.deleted_at IS NULL", subscriberID).
		Order("s.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	channelIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		channelIDs = append(channelIDs, row.ChannelID)
	}

	// 每个频道各取一条最新视频：id是自增的，MAX(id)就是最新一条
	var latest []struct {
		LatestVideoRow
		OwnerID uint64
	}
	err = r.db.Model(&model.Video{}).
		Select(`videos.id, videos.title, videos.description, videos.thumbnail_url,
			videos.video_file_url, videos.duration, videos.views, videos.created_at,
			videos.owner_id`).
		Where("videos.owner_id IN (?)", channelIDs).
		Where("videos.is_published = ?", true).
		Where(`videos.id = (SELECT MAX(v2.id) FROM videos v2
			WHERE v2.owner_id = videos.owner_id AND v2.is_published = ? AND v2.deleted_at IS NULL)`, true).
		Scan(&latest).Error
	if err != nil {
		return nil, err
	}

	latestByChannel := make(map[uint64]*LatestVideoRow, len(latest))
	for i := range latest {
		v := latest[i].LatestVideoRow
		latestByChannel[latest[i].OwnerID] = &v
	}
	for i := range rows {
		rows[i].LatestVideo = latestByChannel[rows[i].ChannelID]
	}
	return rows, nil
}
