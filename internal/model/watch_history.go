package model

// 观看历史，一行代表"某用户看过某视频"。uniqueIndex做去重，
// 重复观看不再新增行，插入顺序（CreatedAt）就是观看顺序
type WatchHistory struct {
	BaseModel
	UserID  uint64 `gorm:"uniqueIndex:idx_user_video_history"`
	VideoID uint64 `gorm:"uniqueIndex:idx_user_video_history"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
