package service

import (
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
)

func TestGetChannelStats(t *testing.T) {
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewVideoRepository(db, nil))

	owner := createTestUser(t, db, "alice", "alice@test.com")
	fan := createTestUser(t, db, "bob", "bob@test.com")
	other := createTestUser(t, db, "carol", "carol@test.com")

	v1 := createTestVideo(t, db, owner.ID, "v1")
	db.Model(v1).Update("views", 100)
	v2 := createTestVideo(t, db, owner.ID, "v2")
	db.Model(v2).Update("views", 50)
	// 别人的视频不计入
	createTestVideo(t, db, other.ID, "别人的")

	db.Create(&model.Like{UserID: fan.ID, TargetKind: model.LikeTargetVideo, TargetID: v1.ID})
	db.Create(&model.Like{UserID: other.ID, TargetKind: model.LikeTargetVideo, TargetID: v1.ID})
	db.Create(&model.Like{UserID: fan.ID, TargetKind: model.LikeTargetVideo, TargetID: v2.ID})

	db.Create(&model.Subscription{SubscriberID: fan.ID, ChannelID: owner.ID})

	stats, err := svc.GetChannelStats(owner.ID)
	if err != nil {
		t.Fatalf("取统计失败: %v", err)
	}
	if stats.TotalVideos != 2 {
		t.Fatalf("视频总数应为2，实际%d", stats.TotalVideos)
	}
	if stats.TotalViews != 150 {
		t.Fatalf("总播放应为150，实际%d", stats.TotalViews)
	}
	if stats.TotalLikes != 3 {
		t.Fatalf("总点赞应为3，实际%d", stats.TotalLikes)
	}
	if stats.SubscriberCount != 1 {
		t.Fatalf("订阅者应为1，实际%d", stats.SubscriberCount)
	}
}

func TestGetChannelVideosIncludesDrafts(t *testing.T) {
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewVideoRepository(db, nil))

	owner := createTestUser(t, db, "alice", "alice@test.com")
	createTestVideo(t, db, owner.ID, "已发布")
	draft := createTestVideo(t, db, owner.ID, "草稿")
	db.Model(draft).Update("is_published", false)

	rows, err := svc.GetChannelVideos(owner.ID)
	if err != nil {
		t.Fatalf("取后台视频失败: %v", err)
	}
	// 后台列表必须包含草稿
	if len(rows) != 2 {
		t.Fatalf("期望2条（含草稿），实际%d条", len(rows))
	}
}
