package model

// 订阅关系：subscriber订阅channel，两者都是User。
// uniqueIndex保证同一对(subscriber, channel)至多一行
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"uniqueIndex:idx_sub_channel"`
	ChannelID    uint64 `gorm:"uniqueIndex:idx_sub_channel"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
