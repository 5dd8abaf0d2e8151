package service

import (
	"net/http"
	"strings"
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

func setupVideoService(t *testing.T) (VideoService, *gorm.DB, *fakeBlobStore, *fakeViewPublisher) {
	t.Helper()
	initTestEnv(t)
	db := newTestDB(t)
	blobStore := &fakeBlobStore{}
	publisher := &fakeViewPublisher{}
	// 测试不连Redis，repo的缓存方法对nil客户端降级为未命中
	svc := NewVideoService(repository.NewVideoRepository(db, nil), blobStore, publisher)
	return svc, db, blobStore, publisher
}

func TestPublishVideo(t *testing.T) {
	svc, db, blobStore, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	video, err := svc.Publish(owner.ID, "第一条视频", "简介", 95.5,
		strings.NewReader("video-bytes"), "clip.mp4",
		strings.NewReader("thumb-bytes"), "thumb.jpg")
	if err != nil {
		t.Fatalf("投稿失败: %v", err)
	}
	if video.ID == 0 {
		t.Fatalf("投稿后视频ID不应为0")
	}
	if !video.IsPublished {
		t.Fatalf("新投稿默认应为已发布")
	}
	if video.VideoFileKey == "" || video.ThumbnailKey == "" {
		t.Fatalf("两个对象的key都要落库")
	}
	if blobStore.uploads.Load() != 2 {
		t.Fatalf("期望2次上传，实际%d次", blobStore.uploads.Load())
	}
}

func TestPublishVideoThumbnailFailureReclaimsVideoFile(t *testing.T) {
	svc, db, blobStore, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	// 第一次上传（视频文件）成功，第二次（封面）失败
	blobStore.failAfter = 1
	_, err := svc.Publish(owner.ID, "标题", "", 10,
		strings.NewReader("v"), "clip.mp4", strings.NewReader("t"), "thumb.jpg")
	assertAPIError(t, err, http.StatusBadRequest)

	// 已传上去的视频文件应被回收
	if len(blobStore.deleted) != 1 {
		t.Fatalf("期望回收1个对象，实际%d个", len(blobStore.deleted))
	}

	var count int64
	db.Model(&model.Video{}).Count(&count)
	if count != 0 {
		t.Fatalf("投稿失败时不应有视频入库")
	}
}

func TestGetVideoDetail(t *testing.T) {
	svc, db, _, publisher := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	viewer := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "观测目标")

	// viewer点了赞并订阅了作者；另一个用户也点了赞
	carol := createTestUser(t, db, "carol", "carol@test.com")
	db.Create(&model.Like{UserID: viewer.ID, TargetKind: model.LikeTargetVideo, TargetID: video.ID})
	db.Create(&model.Like{UserID: carol.ID, TargetKind: model.LikeTargetVideo, TargetID: video.ID})
	db.Create(&model.Subscription{SubscriberID: viewer.ID, ChannelID: owner.ID})

	detail, err := svc.GetVideoDetail(video.ID, viewer.ID)
	if err != nil {
		t.Fatalf("查详情失败: %v", err)
	}
	if detail.LikeCount != 2 {
		t.Fatalf("期望2个赞，实际%d", detail.LikeCount)
	}
	if !detail.IsLiked {
		t.Fatalf("viewer视角下应显示已点赞")
	}
	if detail.SubscriberCount != 1 {
		t.Fatalf("期望1个订阅者，实际%d", detail.SubscriberCount)
	}
	if !detail.IsSubscribed {
		t.Fatalf("viewer视角下应显示已订阅")
	}
	if detail.OwnerUsername != "alice" {
		t.Fatalf("作者信息不对: %s", detail.OwnerUsername)
	}

	// 每次成功的详情读取都要发一条播放事件
	if len(publisher.messages) != 1 {
		t.Fatalf("期望1条播放事件，实际%d条", len(publisher.messages))
	}
	if publisher.messages[0].VideoID != video.ID || publisher.messages[0].UserID != viewer.ID {
		t.Fatalf("播放事件内容不对: %+v", publisher.messages[0])
	}
}

func TestGetVideoDetailHidesUnpublished(t *testing.T) {
	svc, db, _, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	viewer := createTestUser(t, db, "bob", "bob@test.com")

	video := createTestVideo(t, db, owner.ID, "草稿")
	db.Model(video).Update("is_published", false)

	// 陌生人看不到草稿
	_, err := svc.GetVideoDetail(video.ID, viewer.ID)
	assertAPIError(t, err, http.StatusNotFound)

	// 作者自己能看到
	if _, err := svc.GetVideoDetail(video.ID, owner.ID); err != nil {
		t.Fatalf("作者应能看到自己的草稿: %v", err)
	}
}

func TestGetFeed(t *testing.T) {
	svc, db, _, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")

	for i := 0; i < 5; i++ {
		createTestVideo(t, db, owner.ID, "视频")
	}
	draft := createTestVideo(t, db, owner.ID, "草稿")
	db.Model(draft).Update("is_published", false)

	videos, err := svc.GetFeed(3)
	if err != nil {
		t.Fatalf("取feed失败: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("期望3条，实际%d条", len(videos))
	}

	// 草稿不出现在feed里
	videos, err = svc.GetFeed(100)
	if err != nil {
		t.Fatalf("取feed失败: %v", err)
	}
	if len(videos) != 5 {
		t.Fatalf("feed应只含已发布的5条，实际%d条", len(videos))
	}
}

func TestUpdateVideoOwnership(t *testing.T) {
	svc, db, _, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	stranger := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "原标题")

	// 非作者不能改
	_, err := svc.UpdateVideo(video.ID, stranger.ID, "篡改", "", nil, "")
	assertAPIError(t, err, http.StatusForbidden)

	// 作者可以改
	updated, err := svc.UpdateVideo(video.ID, owner.ID, "新标题", "新简介", nil, "")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Title != "新标题" || updated.Description != "新简介" {
		t.Fatalf("更新内容没有生效: %+v", updated)
	}
}

func TestDeleteVideoReclaimsObjects(t *testing.T) {
	svc, db, blobStore, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	stranger := createTestUser(t, db, "bob", "bob@test.com")

	video := createTestVideo(t, db, owner.ID, "要删的")
	db.Model(video).Updates(map[string]interface{}{
		"video_file_key": "obj/v.mp4",
		"thumbnail_key":  "obj/t.jpg",
	})

	err := svc.DeleteVideo(video.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)

	if err := svc.DeleteVideo(video.ID, owner.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if len(blobStore.deleted) != 2 {
		t.Fatalf("视频文件和封面都应被回收，实际回收%d个", len(blobStore.deleted))
	}

	_, err = svc.GetVideoDetail(video.ID, owner.ID)
	assertAPIError(t, err, http.StatusNotFound)
}

func TestTogglePublish(t *testing.T) {
	svc, db, _, _ := setupVideoService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	stranger := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "开关测试")

	_, err := svc.TogglePublish(video.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)

	state, err := svc.TogglePublish(video.ID, owner.ID)
	if err != nil {
		t.Fatalf("切换失败: %v", err)
	}
	if state {
		t.Fatalf("已发布切一次应变为未发布")
	}

	state, err = svc.TogglePublish(video.ID, owner.ID)
	if err != nil {
		t.Fatalf("切换失败: %v", err)
	}
	if !state {
		t.Fatalf("再切一次应回到已发布")
	}
}
