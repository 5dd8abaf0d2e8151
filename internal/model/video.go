package model

// Video结构，视频都要有什么？作者、标题、简介、时长、播放量，外加对象存储里的两个文件
type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"` // 作者ID，用于关联用户
	Title       string `gorm:"not null"`
	Description string
	Duration    float64 // 时长（秒）
	Views       uint64  `gorm:"default:0"`
	IsPublished bool    `gorm:"default:true;index"`

	// 视频文件和封面图，都是 url + 对象存储key 成对出现
	VideoFileURL string `gorm:"not null"`
	VideoFileKey string
	ThumbnailURL string
	ThumbnailKey string

	// 外键OwnerID关联User表的ID
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
