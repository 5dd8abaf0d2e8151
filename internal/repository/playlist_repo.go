package repository

import (
	"time"

	"Lyra_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistSummaryRow 是用户播放列表读模型的投影结果：列表 + 视频数 + 总播放量
type PlaylistSummaryRow struct {
	ID          uint64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TotalVideos uint64
	TotalViews  uint64
}

// PlaylistVideoRow 是播放列表详情里挂载的视频
type PlaylistVideoRow struct {
	ID           uint64
	Title        string
	Description  string
	ThumbnailURL string
	VideoFileURL string
	Duration     float64
	Views        uint64
	CreatedAt    time.Time
}

// PlaylistDetailRow 是单个播放列表读模型的投影结果
type PlaylistDetailRow struct {
	ID                   uint64
	Name                 string
	Description          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	OwnerID              uint64
	OwnerUsername        string
	OwnerProfileImageURL string
	TotalVideos          uint64
	TotalViews           uint64
	Videos               []PlaylistVideoRow
}

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	FindByID(playlistID uint64) (*model.Playlist, error)
	Update(playlistID uint64, name, description string) (*model.Playlist, error)
	Delete(playlistID uint64) error

	// AddVideo 返回是否真的插入了（重复添加返回false）
	AddVideo(playlistID, videoID uint64) (bool, error)
	RemoveVideo(playlistID, videoID uint64) error

	GetUserPlaylists(ownerID uint64) ([]PlaylistSummaryRow, error)
	GetPlaylistDetail(playlistID uint64) (*PlaylistDetailRow, error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(playlistID uint64) (*model.Playlist, error) {
	var result model.Playlist
	err := r.db.First(&result, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *playlistRepository) Update(playlistID uint64, name, description string) (*model.Playlist, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) > 0 {
		if err := r.db.Model(&model.Playlist{}).Where("id = ?", playlistID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(playlistID)
}

func (r *playlistRepository) Delete(playlistID uint64) error {
	if err := r.db.Delete(&model.Playlist{}, playlistID).Error; err != nil {
		return err
	}
	// 关联行没有保留价值，物理删除
	return r.db.Exec("DELETE FROM playlist_videos WHERE playlist_id = ?", playlistID).Error
}

// AddVideo 有序去重集合的插入：唯一索引保证重复添加不生效（OnConflict DoNothing）。
// Position取当前最大值+1，且在INSERT语句里原地计算——先COUNT再插两步走的话，
// 一旦中途有过删除，新位置就会和现存行撞车，并发下也有竞态。
// 子查询套一层派生表是为了绕开MySQL不允许在INSERT里直接查同一张表的限制
func (r *playlistRepository) AddVideo(playlistID, videoID uint64) (bool, error) {
	now := time.Now()
	result := r.db.Model(&model.PlaylistVideo{}).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "playlist_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(map[string]interface{}{
		"playlist_id": playlistID,
		"video_id":    videoID,
		"position": gorm.Expr(
			`(SELECT COALESCE(MAX(pv.position), 0) + 1 FROM
				(SELECT position FROM playlist_videos WHERE playlist_id = ?) AS pv)`, playlistID),
		"created_at": now,
		"updated_at": now,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *playlistRepository) RemoveVideo(playlistID, videoID uint64) error {
	return r.db.Exec("DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?",
		playlistID, videoID).Error
}

// GetUserPlaylists 用户播放列表读模型：按属主过滤，叠加视频数/总播放量两个聚合阶段
func (r *playlistRepository) GetUserPlaylists(ownerID uint64) ([]PlaylistSummaryRow, error) {
	totalVideos := r.db.Model(&model.PlaylistVideo{}).
		Select("COUNT(*)").
		Where("playlist_videos.playlist_id = playlists.id")

	totalViews := r.db.Model(&model.PlaylistVideo{}).
		Select("COALESCE(SUM(videos.views), 0)").
		Joins("JOIN videos ON videos.id = playlist_videos.video_id AND videos.deleted_at IS NULL").
		Where("playlist_videos.playlist_id = playlists.id")

	var rows []PlaylistSummaryRow
	err := r.db.Model(&model.Playlist{}).
		Select(`playlists.id, playlists.name, playlists.description,
			playlists.created_at, playlists.updated_at,
			(?) AS total_videos, (?) AS total_views`, totalVideos, totalViews).
		Where("playlists.owner_id = ?", ownerID).
		Order("playlists.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// GetPlaylistDetail 播放列表详情读模型：列表 + 属主 + 聚合数，再按插入顺序挂载已发布的视频
func (r *playlistRepository) GetPlaylistDetail(playlistID uint64) (*PlaylistDetailRow, error) {
	totalVideos := r.db.Model(&model.PlaylistVideo{}).
		Select("COUNT(*)").
		Where("playlist_videos.playlist_id = playlists.id")

	totalViews := r.db.Model(&model.PlaylistVideo{}).
		Select("COALESCE(SUM(videos.views), 0)").
		Joins("JOIN videos ON videos.id = playlist_videos.video_id AND videos.deleted_at IS NULL").
		Where("playlist_videos.playlist_id = playlists.id")

	var row PlaylistDetailRow
	err := r.db.Model(&model.Playlist{}).
		Select(`playlists.id, playlists.name, playlists.description,
			playlists.created_at, playlists.updated_at,
			users.id AS owner_id, users.username AS owner_username,
			users.profile_image_url AS owner_profile_image_url,
			(?) AS total_videos, (?) AS total_views`, totalVideos, totalViews).
		Joins("JOIN users ON users.id = playlists.owner_id").
		Where("playlists.id = ?", playlistID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	// 只返回已发布的视频，按加入列表的顺序排列
	err = r.db.Model(&model.PlaylistVideo{}).
		Select(`videos.id, videos.title, videos.description, videos.thumbnail_url,
			videos.video_file_url, videos.duration, videos.views, videos.created_at`).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id AND videos.deleted_at IS NULL").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Where("videos.is_published = ?", true).
		Order("playlist_videos.position asc").
		Scan(&row.Videos).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
