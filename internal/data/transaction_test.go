package data

import (
	"fmt"
	"testing"
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 纳秒时间戳防止-count>1时前一轮的库残留到下一轮
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.WatchHistory{}); err != nil {
		t.Fatalf("测试数据库迁移失败: %v", err)
	}
	return db
}

// 播放事件的消费语义：播放量+1和观看历史写入要么一起成功，要么一起回滚；
// 同一用户重看只加播放量，不重复写历史
func TestUnitOfWorkViewConsumption(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "alice", Email: "alice@test.com", Password: "x"}
	db.Create(user)
	video := &model.Video{OwnerID: user.ID, Title: "目标", VideoFileURL: "https://t/v.mp4", IsPublished: true}
	db.Create(video)

	videoRepo := repository.NewVideoRepository(db, nil)
	userRepo := repository.NewUserRepository(db)
	uow := NewUnitOfWork(db, videoRepo, userRepo)

	consume := func() error {
		return uow.Execute(func(repos *TransactionalRepositories) error {
			if err := repos.VideoRepo.IncrementViews(video.ID); err != nil {
				return err
			}
			return repos.UserRepo.AddWatchHistory(user.ID, video.ID)
		})
	}

	// 看两次
	if err := consume(); err != nil {
		t.Fatalf("第一次消费失败: %v", err)
	}
	if err := consume(); err != nil {
		t.Fatalf("第二次消费失败: %v", err)
	}

	var stored model.Video
	db.First(&stored, video.ID)
	if stored.Views != 2 {
		t.Fatalf("播放量应为2，实际%d", stored.Views)
	}

	var historyCount int64
	db.Model(&model.WatchHistory{}).Count(&historyCount)
	if historyCount != 1 {
		t.Fatalf("观看历史应去重为1条，实际%d条", historyCount)
	}
}

// 业务函数返回error时整个事务回滚，播放量不能只加一半
func TestUnitOfWorkRollsBack(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "alice", Email: "alice@test.com", Password: "x"}
	db.Create(user)
	video := &model.Video{OwnerID: user.ID, Title: "目标", VideoFileURL: "https://t/v.mp4", IsPublished: true}
	db.Create(video)

	videoRepo := repository.NewVideoRepository(db, nil)
	userRepo := repository.NewUserRepository(db)
	uow := NewUnitOfWork(db, videoRepo, userRepo)

	err := uow.Execute(func(repos *TransactionalRepositories) error {
		if err := repos.VideoRepo.IncrementViews(video.ID); err != nil {
			return err
		}
		return fmt.Errorf("模拟下游失败")
	})
	if err == nil {
		t.Fatalf("期望事务失败")
	}

	var stored model.Video
	db.First(&stored, video.ID)
	if stored.Views != 0 {
		t.Fatalf("事务回滚后播放量应为0，实际%d", stored.Views)
	}
}
