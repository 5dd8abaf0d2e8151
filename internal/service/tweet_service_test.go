package service

import (
	"net/http"
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

func setupTweetService(t *testing.T) (TweetService, *gorm.DB) {
	t.Helper()
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewTweetService(repository.NewTweetRepository(db))
	return svc, db
}

func TestTweetLifecycle(t *testing.T) {
	svc, db := setupTweetService(t)
	author := createTestUser(t, db, "alice", "alice@test.com")
	stranger := createTestUser(t, db, "bob", "bob@test.com")

	tweet, err := svc.CreateTweet(author.ID, "  今天发了新视频  ")
	if err != nil {
		t.Fatalf("发推文失败: %v", err)
	}
	if tweet.Content != "今天发了新视频" {
		t.Fatalf("内容应去除首尾空白: %q", tweet.Content)
	}

	_, err = svc.CreateTweet(author.ID, "   ")
	assertAPIError(t, err, http.StatusBadRequest)

	// 归属校验
	_, err = svc.UpdateTweet(tweet.ID, stranger.ID, "篡改")
	assertAPIError(t, err, http.StatusForbidden)
	err = svc.DeleteTweet(tweet.ID, stranger.ID)
	assertAPIError(t, err, http.StatusForbidden)

	updated, err := svc.UpdateTweet(tweet.ID, author.ID, "改过了")
	if err != nil {
		t.Fatalf("改推文失败: %v", err)
	}
	if updated.Content != "改过了" {
		t.Fatalf("修改没有生效: %q", updated.Content)
	}

	if err := svc.DeleteTweet(tweet.ID, author.ID); err != nil {
		t.Fatalf("删推文失败: %v", err)
	}
	_, err = svc.GetTweetDetail(tweet.ID, author.ID)
	assertAPIError(t, err, http.StatusNotFound)
}

func TestGetUserTweetsWithLikes(t *testing.T) {
	svc, db := setupTweetService(t)
	author := createTestUser(t, db, "alice", "alice@test.com")
	viewer := createTestUser(t, db, "bob", "bob@test.com")

	first, err := svc.CreateTweet(author.ID, "第一条")
	if err != nil {
		t.Fatalf("发推文失败: %v", err)
	}
	second, err := svc.CreateTweet(author.ID, "第二条")
	if err != nil {
		t.Fatalf("发推文失败: %v", err)
	}

	// viewer赞了第一条，作者自己也赞了第一条
	db.Create(&model.Like{UserID: viewer.ID, TargetKind: model.LikeTargetTweet, TargetID: first.ID})
	db.Create(&model.Like{UserID: author.ID, TargetKind: model.LikeTargetTweet, TargetID: first.ID})

	rows, err := svc.GetUserTweets(author.ID, viewer.ID)
	if err != nil {
		t.Fatalf("取推文列表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望2条，实际%d条", len(rows))
	}
	// 最新的在前
	if rows[0].ID != second.ID {
		t.Fatalf("最新推文应排在最前")
	}

	for _, row := range rows {
		if row.ID == first.ID {
			if row.LikeCount != 2 {
				t.Fatalf("第一条的赞数应为2，实际%d", row.LikeCount)
			}
			if !row.IsLiked {
				t.Fatalf("viewer视角下第一条应显示已点赞")
			}
		}
		if row.ID == second.ID && row.IsLiked {
			t.Fatalf("第二条没人赞过")
		}
	}
}
