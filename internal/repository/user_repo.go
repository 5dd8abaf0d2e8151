package repository

import (
	"time"

	"Lyra_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChannelProfileRow 是频道主页读模型的投影结果
type ChannelProfileRow struct {
	ID                uint64
	Username          string
	Email             string
	ProfileImageURL   string
	SubscriberCount   uint64
	SubscriptionCount uint64
	IsSubscribed      bool
}

// WatchHistoryRow 是观看历史读模型的投影结果：视频 + 作者 + 观看时间
type WatchHistoryRow struct {
	VideoID              uint64
	Title                string
	Description          string
	ThumbnailURL         string
	VideoFileURL         string
	Duration             float64
	Views                uint64
	VideoCreatedAt       time.Time
	WatchedAt            time.Time
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
}

type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// 单槽位刷新令牌：登录/刷新时覆盖，登出时传空串清除
	UpdateRefreshToken(userID uint64, refreshToken string) error
	UpdatePassword(userID uint64, hashedPassword string) error
	UpdateAccountDetails(userID uint64, username, email string) (*model.User, error)
	UpdateProfileImage(userID uint64, url, key string) error

	// 观看历史：靠唯一索引去重，重复观看不再新增行
	AddWatchHistory(userID, videoID uint64) error
	GetWatchHistory(userID uint64) ([]WatchHistoryRow, error)

	// 频道主页读模型：订阅数、被订阅数、viewer是否已订阅
	GetChannelProfile(username string, viewerID uint64) (*ChannelProfileRow, error)

	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// WithTx 返回一个新的、绑定到事务的 userRepository 实例
func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("email = ?", email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) UpdateRefreshToken(userID uint64, refreshToken string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error
}

func (r *userRepository) UpdatePassword(userID uint64, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateAccountDetails(userID uint64, username, email string) (*model.User, error) {
	updates := map[string]interface{}{}
	if username != "" {
		updates["username"] = username
	}
	if email != "" {
		updates["email"] = email
	}
	if len(updates) > 0 {
		if err := r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(userID)
}

func (r *userRepository) UpdateProfileImage(userID uint64, url, key string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"profile_image_url": url,
		"profile_image_key": key,
	}).Error
}

// AddWatchHistory 用OnConflict DoNothing实现"重复观看不重复记录"，
// 查重交给数据库的唯一索引，避免先查后插的竞态
func (r *userRepository) AddWatchHistory(userID, videoID uint64) error {
	history := &model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(history).Error
}

// GetWatchHistory 观看历史读模型：历史表 join 视频表 join 作者表，按观看时间倒序
func (r *userRepository) GetWatchHistory(userID uint64) ([]WatchHistoryRow, error) {
	var rows []WatchHistoryRow
	err := r.db.Model(&model.WatchHistory{}).
		Select(`watch_histories.video_id, videos.title, videos.description,
			videos.thumbnail_url, videos.video_file_url, videos.duration, videos.views,
			videos.created_at AS video_created_at, watch_histories.created_at AS watched_at,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url`).
		Joins("JOIN videos ON videos.id = watch_histories.video_id AND videos.deleted_at IS NULL").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_histories.user_id = ?", userID).
		Order("watch_histories.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// GetChannelProfile 频道主页读模型：按用户名过滤，叠加订阅者数/订阅数/viewer是否已订阅三个阶段
func (r *userRepository) GetChannelProfile(username string, viewerID uint64) (*ChannelProfileRow, error) {
	var row ChannelProfileRow
	err := r.db.Model(&model.User{}).
		Select(`users.id, users.username, users.email, users.profile_image_url,
			(?) AS subscriber_count, (?) AS subscription_count, (?) AS is_subscribed`,
			subscriberCountSubquery(r.db, "users.id"),
			subscriptionCountSubquery(r.db, "users.id"),
			isSubscribedSubquery(r.db, "users.id", viewerID)).
		Where("users.username = ?", username).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
