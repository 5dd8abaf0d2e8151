package service

import (
	"net/http"
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

func setupPlaylistService(t *testing.T) (PlaylistService, *gorm.DB) {
	t.Helper()
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewPlaylistService(
		repository.NewPlaylistRepository(db),
		repository.NewVideoRepository(db, nil),
	)
	return svc, db
}

func TestCreatePlaylist(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	playlist, err := svc.CreatePlaylist(owner.ID, "收藏夹", "好东西")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}
	if playlist.ID == 0 {
		t.Fatalf("建列表后ID不应为0")
	}

	_, err = svc.CreatePlaylist(owner.ID, "   ", "")
	assertAPIError(t, err, http.StatusBadRequest)
}

func TestAddVideoDeduplicates(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	video := createTestVideo(t, db, owner.ID, "收藏目标")

	playlist, err := svc.CreatePlaylist(owner.ID, "收藏夹", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}

	// 同一条视频加两次，第二次静默成功但不重复入库
	if err := svc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}
	if err := svc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("重复添加应静默成功: %v", err)
	}

	var count int64
	db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlist.ID).Count(&count)
	if count != 1 {
		t.Fatalf("期望1条关联记录，实际%d条", count)
	}

	// 不存在的视频拒绝
	err = svc.AddVideo(playlist.ID, 999, owner.ID)
	assertAPIError(t, err, http.StatusNotFound)
}

// 移除过视频之后再添加，新视频的位置必须排在现存行之后，不能和它们撞车
func TestAddVideoPositionAfterRemoval(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	v1 := createTestVideo(t, db, owner.ID, "视频一")
	v2 := createTestVideo(t, db, owner.ID, "视频二")
	v3 := createTestVideo(t, db, owner.ID, "视频三")

	playlist, err := svc.CreatePlaylist(owner.ID, "收藏夹", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}

	for _, v := range []*model.Video{v1, v2} {
		if err := svc.AddVideo(playlist.ID, v.ID, owner.ID); err != nil {
			t.Fatalf("加视频失败: %v", err)
		}
	}
	if err := svc.RemoveVideo(playlist.ID, v1.ID, owner.ID); err != nil {
		t.Fatalf("移除视频失败: %v", err)
	}
	if err := svc.AddVideo(playlist.ID, v3.ID, owner.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}

	var entries []model.PlaylistVideo
	if err := db.Where("playlist_id = ?", playlist.ID).
		Order("position asc").Find(&entries).Error; err != nil {
		t.Fatalf("查询关联记录失败: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("期望2条关联记录，实际%d条", len(entries))
	}
	if entries[0].Position == entries[1].Position {
		t.Fatalf("两条记录位置重复: %d", entries[0].Position)
	}
	// v2在前（position=2），后加的v3拿到更大的位置
	if entries[0].VideoID != v2.ID || entries[1].VideoID != v3.ID {
		t.Fatalf("插入顺序错乱: %d, %d", entries[0].VideoID, entries[1].VideoID)
	}

	// 详情读模型按插入顺序返回
	detail, err := svc.GetPlaylistDetail(playlist.ID)
	if err != nil {
		t.Fatalf("查详情失败: %v", err)
	}
	if len(detail.Videos) != 2 || detail.Videos[0].ID != v2.ID || detail.Videos[1].ID != v3.ID {
		t.Fatalf("详情视频顺序错乱: %+v", detail.Videos)
	}
}

func TestPlaylistOwnership(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	stranger := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "视频")

	playlist, err := svc.CreatePlaylist(owner.ID, "私人列表", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}

	err = svc.AddVideo(playlist.ID, video.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)

	_, err = svc.UpdatePlaylist(playlist.ID, stranger.ID, "篡改", "")
	assertAPIError(t, err, http.StatusForbidden)

	err = svc.DeletePlaylist(playlist.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)
}

func TestGetPlaylistDetail(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	v1 := createTestVideo(t, db, owner.ID, "第一个加入")
	db.Model(v1).Update("views", 100)
	v2 := createTestVideo(t, db, owner.ID, "第二个加入")
	db.Model(v2).Update("views", 50)
	draft := createTestVideo(t, db, owner.ID, "草稿")
	db.Model(draft).Update("is_published", false)

	playlist, err := svc.CreatePlaylist(owner.ID, "合集", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}
	for _, v := range []*model.Video{v1, v2, draft} {
		if err := svc.AddVideo(playlist.ID, v.ID, owner.ID); err != nil {
			t.Fatalf("加视频失败: %v", err)
		}
	}

	detail, err := svc.GetPlaylistDetail(playlist.ID)
	if err != nil {
		t.Fatalf("取详情失败: %v", err)
	}
	// 草稿不出现在详情里
	if len(detail.Videos) != 2 {
		t.Fatalf("详情应只含已发布的2条，实际%d条", len(detail.Videos))
	}
	// 按加入顺序排列
	if detail.Videos[0].ID != v1.ID || detail.Videos[1].ID != v2.ID {
		t.Fatalf("视频应按position排序: %+v", detail.Videos)
	}
	if detail.OwnerUsername != "alice" {
		t.Fatalf("作者信息不对: %s", detail.OwnerUsername)
	}

	_, err = svc.GetPlaylistDetail(999)
	assertAPIError(t, err, http.StatusNotFound)
}

func TestGetUserPlaylistsTotals(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	v1 := createTestVideo(t, db, owner.ID, "v1")
	db.Model(v1).Update("views", 30)
	v2 := createTestVideo(t, db, owner.ID, "v2")
	db.Model(v2).Update("views", 20)

	playlist, err := svc.CreatePlaylist(owner.ID, "合集", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}
	if err := svc.AddVideo(playlist.ID, v1.ID, owner.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}
	if err := svc.AddVideo(playlist.ID, v2.ID, owner.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}

	rows, err := svc.GetUserPlaylists(owner.ID)
	if err != nil {
		t.Fatalf("取列表失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望1个列表，实际%d个", len(rows))
	}
	if rows[0].TotalVideos != 2 {
		t.Fatalf("视频数聚合不对: %d", rows[0].TotalVideos)
	}
	if rows[0].TotalViews != 50 {
		t.Fatalf("总播放聚合不对: %d", rows[0].TotalViews)
	}
}

func TestRemoveVideoAndDeletePlaylist(t *testing.T) {
	svc, db := setupPlaylistService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	video := createTestVideo(t, db, owner.ID, "视频")

	playlist, err := svc.CreatePlaylist(owner.ID, "临时", "")
	if err != nil {
		t.Fatalf("建列表失败: %v", err)
	}
	if err := svc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}

	if err := svc.RemoveVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("移除视频失败: %v", err)
	}
	var count int64
	db.Model(&model.PlaylistVideo{}).Count(&count)
	if count != 0 {
		t.Fatalf("移除后不应有关联记录")
	}

	if err := svc.DeletePlaylist(playlist.ID, owner.ID); err != nil {
		t.Fatalf("删列表失败: %v", err)
	}
	_, err = svc.GetPlaylistDetail(playlist.ID)
	assertAPIError(t, err, http.StatusNotFound)
}
