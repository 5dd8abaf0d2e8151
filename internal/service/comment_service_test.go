package service

import (
	"fmt"
	"net/http"
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

func setupCommentService(t *testing.T) (CommentService, *gorm.DB) {
	t.Helper()
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewVideoRepository(db, nil),
	)
	return svc, db
}

func TestAddComment(t *testing.T) {
	svc, db := setupCommentService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	viewer := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "被评论的")

	comment, err := svc.AddComment(viewer.ID, video.ID, "  说得好  ")
	if err != nil {
		t.Fatalf("发评论失败: %v", err)
	}
	if comment.Content != "说得好" {
		t.Fatalf("内容应去除首尾空白: %q", comment.Content)
	}

	// 空内容和不存在的视频都拒绝
	_, err = svc.AddComment(viewer.ID, video.ID, "   ")
	assertAPIError(t, err, http.StatusBadRequest)

	_, err = svc.AddComment(viewer.ID, 999, "评论")
	assertAPIError(t, err, http.StatusNotFound)
}

func TestUpdateAndDeleteCommentOwnership(t *testing.T) {
	svc, db := setupCommentService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	author := createTestUser(t, db, "bob", "bob@test.com")
	stranger := createTestUser(t, db, "carol", "carol@test.com")
	video := createTestVideo(t, db, owner.ID, "视频")

	comment, err := svc.AddComment(author.ID, video.ID, "原始内容")
	if err != nil {
		t.Fatalf("发评论失败: %v", err)
	}

	// 非作者不能改不能删
	_, err = svc.UpdateComment(comment.ID, stranger.ID, "篡改")
	assertAPIError(t, err, http.StatusForbidden)
	err = svc.DeleteComment(comment.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)

	// 作者可以改
	updated, err := svc.UpdateComment(comment.ID, author.ID, "修改后")
	if err != nil {
		t.Fatalf("改评论失败: %v", err)
	}
	if updated.Content != "修改后" {
		t.Fatalf("修改没有生效: %q", updated.Content)
	}

	// 作者可以删
	if err := svc.DeleteComment(comment.ID, author.ID); err != nil {
		t.Fatalf("删评论失败: %v", err)
	}
	_, err = svc.UpdateComment(comment.ID, author.ID, "已删的")
	assertAPIError(t, err, http.StatusNotFound)
}

func TestGetVideoCommentsPaging(t *testing.T) {
	svc, db := setupCommentService(t)
	owner := createTestUser(t, db, "alice", "alice@test.com")
	viewer := createTestUser(t, db, "bob", "bob@test.com")
	video := createTestVideo(t, db, owner.ID, "热门视频")

	for i := 0; i < 15; i++ {
		if _, err := svc.AddComment(owner.ID, video.ID, fmt.Sprintf("第%d条", i)); err != nil {
			t.Fatalf("发评论失败: %v", err)
		}
	}

	// viewer给最后一条点了赞
	var last model.Comment
	db.Order("id desc").First(&last)
	db.Create(&model.Like{UserID: viewer.ID, TargetKind: model.LikeTargetComment, TargetID: last.ID})

	page1, err := svc.GetVideoComments(video.ID, viewer.ID, 1, 10)
	if err != nil {
		t.Fatalf("取评论失败: %v", err)
	}
	if len(page1) != 10 {
		t.Fatalf("第一页应有10条，实际%d条", len(page1))
	}
	// 最新的在前，且带上了点赞聚合
	if page1[0].ID != last.ID {
		t.Fatalf("最新评论应排在最前")
	}
	if page1[0].LikeCount != 1 || !page1[0].IsLiked {
		t.Fatalf("点赞聚合不对: %+v", page1[0])
	}

	page2, err := svc.GetVideoComments(video.ID, viewer.ID, 2, 10)
	if err != nil {
		t.Fatalf("取第二页失败: %v", err)
	}
	if len(page2) != 5 {
		t.Fatalf("第二页应有5条，实际%d条", len(page2))
	}

	// 非法的page和limit回落到默认值
	fallback, err := svc.GetVideoComments(video.ID, viewer.ID, -1, 0)
	if err != nil {
		t.Fatalf("取评论失败: %v", err)
	}
	if len(fallback) != 10 {
		t.Fatalf("默认分页应为10条，实际%d条", len(fallback))
	}
}
