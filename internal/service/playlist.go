package service

import (
	"errors"
	"net/http"
	"strings"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/pkg/apierr"

	"gorm.io/gorm"
)

// PlaylistService 播放列表：建删改、加减视频、列表和详情读模型
type PlaylistService interface {
	CreatePlaylist(ownerID uint64, name, description string) (*model.Playlist, error)
	UpdatePlaylist(playlistID, userID uint64, name, description string) (*model.Playlist, error)
	DeletePlaylist(playlistID, userID uint64) error
	AddVideo(playlistID, videoID, userID uint64) error
	RemoveVideo(playlistID, videoID, userID uint64) error
	GetUserPlaylists(ownerID uint64) ([]repository.PlaylistSummaryRow, error)
	GetPlaylistDetail(playlistID uint64) (*repository.PlaylistDetailRow, error)
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *playlistService) CreatePlaylist(ownerID uint64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "播放列表名称不能为空")
	}

	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// mustOwnPlaylist 加载播放列表并校验归属
func (s *playlistService) mustOwnPlaylist(playlistID, userID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "播放列表不存在")
		}
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, apierr.New(http.StatusForbidden, "无权操作他人的播放列表")
	}
	return playlist, nil
}

func (s *playlistService) UpdatePlaylist(playlistID, userID uint64, name, description string) (*model.Playlist, error) {
	if name == "" && description == "" {
		return nil, apierr.New(http.StatusBadRequest, "没有需要更新的字段")
	}
	if _, err := s.mustOwnPlaylist(playlistID, userID); err != nil {
		return nil, err
	}
	return s.playlistRepo.Update(playlistID, name, description)
}

func (s *playlistService) DeletePlaylist(playlistID, userID uint64) error {
	if _, err := s.mustOwnPlaylist(playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideo 往列表加视频：1、归属校验 2、视频必须存在 3、唯一索引兜底去重，重复添加静默成功
func (s *playlistService) AddVideo(playlistID, videoID, userID uint64) error {
	if _, err := s.mustOwnPlaylist(playlistID, userID); err != nil {
		return err
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.New(http.StatusNotFound, "视频不存在")
		}
		return err
	}

	_, err := s.playlistRepo.AddVideo(playlistID, videoID)
	return err
}

func (s *playlistService) RemoveVideo(playlistID, videoID, userID uint64) error {
	if _, err := s.mustOwnPlaylist(playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveVideo(playlistID, videoID)
}

func (s *playlistService) GetUserPlaylists(ownerID uint64) ([]repository.PlaylistSummaryRow, error) {
	return s.playlistRepo.GetUserPlaylists(ownerID)
}

func (s *playlistService) GetPlaylistDetail(playlistID uint64) (*repository.PlaylistDetailRow, error) {
	detail, err := s.playlistRepo.GetPlaylistDetail(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "播放列表不存在")
		}
		return nil, err
	}
	return detail, nil
}
