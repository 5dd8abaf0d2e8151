package model

type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

// 播放列表和视频的关联表。Position记录插入顺序，
// uniqueIndex保证同一个视频在同一个列表里只出现一次
type PlaylistVideo struct {
	BaseModel
	PlaylistID uint64 `gorm:"uniqueIndex:idx_playlist_video"`
	VideoID    uint64 `gorm:"uniqueIndex:idx_playlist_video"`
	Position   uint64 `gorm:"not null"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
