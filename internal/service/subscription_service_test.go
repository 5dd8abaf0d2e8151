package service

import (
	"net/http"
	"testing"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/gorm"
)

func setupSubscriptionService(t *testing.T) (SubscriptionService, *gorm.DB) {
	t.Helper()
	initTestEnv(t)
	db := newTestDB(t)
	svc := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
	)
	return svc, db
}

func TestToggleSubscription(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	alice := createTestUser(t, db, "alice", "alice@test.com")
	bob := createTestUser(t, db, "bob", "bob@test.com")

	subscribed, err := svc.ToggleSubscription(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("订阅失败: %v", err)
	}
	if !subscribed {
		t.Fatalf("第一次切换应为已订阅")
	}

	subscribed, err = svc.ToggleSubscription(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("退订失败: %v", err)
	}
	if subscribed {
		t.Fatalf("第二次切换应为已退订")
	}

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	if count != 0 {
		t.Fatalf("退订后应物理删除记录，实际剩%d条", count)
	}
}

func TestToggleSubscriptionRejectsSelf(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	alice := createTestUser(t, db, "alice", "alice@test.com")

	_, err := svc.ToggleSubscription(alice.ID, alice.ID)
	assertAPIError(t, err, http.StatusBadRequest)
}

func TestToggleSubscriptionMissingChannel(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	alice := createTestUser(t, db, "alice", "alice@test.com")

	_, err := svc.ToggleSubscription(alice.ID, 999)
	assertAPIError(t, err, http.StatusNotFound)
}

func TestGetChannelSubscribers(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	alice := createTestUser(t, db, "alice", "alice@test.com")
	bob := createTestUser(t, db, "bob", "bob@test.com")
	carol := createTestUser(t, db, "carol", "carol@test.com")

	// bob和carol订阅alice；alice回订了bob；carol还订阅了bob
	db.Create(&model.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID})
	db.Create(&model.Subscription{SubscriberID: carol.ID, ChannelID: alice.ID})
	db.Create(&model.Subscription{SubscriberID: alice.ID, ChannelID: bob.ID})
	db.Create(&model.Subscription{SubscriberID: carol.ID, ChannelID: bob.ID})

	rows, err := svc.GetChannelSubscribers(alice.ID)
	if err != nil {
		t.Fatalf("取粉丝列表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望2个粉丝，实际%d个", len(rows))
	}

	byName := map[string]repository.SubscriberRow{}
	for _, row := range rows {
		byName[row.Username] = row
	}
	// bob有2个粉丝（alice和carol），且alice回订了他
	if byName["bob"].SubscriberCount != 2 {
		t.Fatalf("bob的粉丝数应为2，实际%d", byName["bob"].SubscriberCount)
	}
	if !byName["bob"].IsSubscribedToSubscriber {
		t.Fatalf("alice回订了bob，回订标记应为true")
	}
	if byName["carol"].IsSubscribedToSubscriber {
		t.Fatalf("alice没订阅carol，回订标记应为false")
	}
}

func TestGetSubscribedChannels(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	alice := createTestUser(t, db, "alice", "alice@test.com")
	bob := createTestUser(t, db, "bob", "bob@test.com")
	carol := createTestUser(t, db, "carol", "carol@test.com")

	db.Create(&model.Subscription{SubscriberID: alice.ID, ChannelID: bob.ID})
	db.Create(&model.Subscription{SubscriberID: alice.ID, ChannelID: carol.ID})

	// bob发过两条视频，carol一条都没发
	createTestVideo(t, db, bob.ID, "旧视频")
	latest := createTestVideo(t, db, bob.ID, "新视频")

	rows, err := svc.GetSubscribedChannels(alice.ID)
	if err != nil {
		t.Fatalf("取关注列表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望2个频道，实际%d个", len(rows))
	}

	for _, row := range rows {
		switch row.Username {
		case "bob":
			if row.LatestVideo == nil {
				t.Fatalf("bob应挂载最新视频")
			}
			if row.LatestVideo.ID != latest.ID {
				t.Fatalf("挂载的不是最新一条: %+v", row.LatestVideo)
			}
		case "carol":
			if row.LatestVideo != nil {
				t.Fatalf("carol没发过视频，latest应为nil")
			}
		default:
			t.Fatalf("出现了预期外的频道: %s", row.Username)
		}
	}
}
