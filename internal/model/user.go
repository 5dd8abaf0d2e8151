package model

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt, DeletedAt
	Username  string `gorm:"unique;not null"`
	Email     string `gorm:"unique;not null"`
	Password  string `gorm:"not null"` // bcrypt哈希，任何响应里都不能出现
	// 头像在对象存储里是 url + key 成对存在，删除/覆盖时要用key
	ProfileImageURL string
	ProfileImageKey string
	// 单槽位刷新令牌，登录/刷新时整体覆盖，登出时清空
	RefreshToken string
}
