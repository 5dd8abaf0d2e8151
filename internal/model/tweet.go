package model

type Tweet struct {
	BaseModel
	OwnerID uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Tweet) TableName() string {
	return "tweets"
}
