package repository

import (
	"Lyra_Tube/internal/model"

	"gorm.io/gorm"
)

// 聚合读模型的公共"阶段"。每个读模型 = 过滤 + 若干计数/成员关系子查询 + 投影，
// 这里把可复用的子查询阶段抽成具名函数，既统一口径又方便单独测试。
// 布尔的"调用者是否持有关系X"一律用 COUNT(*) > 0 的成员子查询表达，不单独发存在性查询。

// likeCountSubquery 统计某类目标的点赞数，targetCol是外层查询里目标ID的列名
func likeCountSubquery(db *gorm.DB, kind string, targetCol string) *gorm.DB {
	return db.Model(&model.Like{}).
		Select("COUNT(*)").
		Where("likes.target_kind = ?", kind).
		Where("likes.target_id = " + targetCol)
}

// isLikedSubquery 判断viewer是否点赞过目标，COUNT(*) > 0 在MySQL里就是0/1，可直接扫进bool
func isLikedSubquery(db *gorm.DB, kind string, targetCol string, viewerID uint64) *gorm.DB {
	return db.Model(&model.Like{}).
		Select("COUNT(*) > 0").
		Where("likes.target_kind = ?", kind).
		Where("likes.target_id = "+targetCol).
		Where("likes.user_id = ?", viewerID)
}

// subscriberCountSubquery 统计某频道的订阅者数，channelCol是外层查询里频道ID的列名
func subscriberCountSubquery(db *gorm.DB, channelCol string) *gorm.DB {
	return db.Model(&model.Subscription{}).
		Select("COUNT(*)").
		Where("subscriptions.channel_id = " + channelCol)
}

// isSubscribedSubquery 判断viewer是否订阅了某频道
func isSubscribedSubquery(db *gorm.DB, channelCol string, viewerID uint64) *gorm.DB {
	return db.Model(&model.Subscription{}).
		Select("COUNT(*) > 0").
		Where("subscriptions.channel_id = "+channelCol).
		Where("subscriptions.subscriber_id = ?", viewerID)
}

// subscriptionCountSubquery 统计某用户自己订阅了多少个频道
func subscriptionCountSubquery(db *gorm.DB, subscriberCol string) *gorm.DB {
	return db.Model(&model.Subscription{}).
		Select("COUNT(*)").
		Where("subscriptions.subscriber_id = " + subscriberCol)
}
