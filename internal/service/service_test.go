package service

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/pkg/config"
	"Lyra_Tube/pkg/logger"
	"Lyra_Tube/pkg/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存sqlite库，用例之间互不污染
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// cache=shared让连接池里的连接看到同一个内存库；
	// 纳秒时间戳防止-count>1时前一轮的库残留到下一轮
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Tweet{},
		&model.WatchHistory{},
	)
	if err != nil {
		t.Fatalf("测试数据库迁移失败: %v", err)
	}
	return db
}

func initTestEnv(t *testing.T) {
	t.Helper()
	if logger.Log == nil {
		logger.InitLogger()
	}
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")
	// 测试里不走config.Load()，TTL直接给定
	config.AccessTokenTTL = 15 * time.Minute
	config.RefreshTokenTTL = 7 * 24 * time.Hour
}

// fakeBlobStore 是对象存储的内存假实现，记录上传和删除过的key
type fakeBlobStore struct {
	uploads   atomic.Uint64
	deleted   []string
	failNext  bool
	failAfter int // 前N次上传成功，之后失败；0表示不限
}

func (f *fakeBlobStore) Upload(file io.Reader, filename string) (*storage.UploadResult, error) {
	if f.failNext {
		f.failNext = false
		return nil, fmt.Errorf("模拟上传失败")
	}
	n := f.uploads.Add(1)
	if f.failAfter > 0 && int(n) > f.failAfter {
		return nil, fmt.Errorf("模拟上传失败")
	}
	key := fmt.Sprintf("fake/%d/%s", n, filename)
	return &storage.UploadResult{
		URL: "https://fake.test/" + key,
		Key: key,
	}, nil
}

func (f *fakeBlobStore) Delete(key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeViewPublisher 把播放事件收进切片，不碰真实MQ
type fakeViewPublisher struct {
	messages []ViewMessage
}

func (f *fakeViewPublisher) PublishView(msg ViewMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

// createTestUser 直接往库里插一个密码为password的用户
func createTestUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码加密失败: %v", err)
	}
	user := &model.User{Username: username, Email: email, Password: string(hashed)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// createTestVideo 插一条已发布的视频
func createTestVideo(t *testing.T, db *gorm.DB, ownerID uint64, title string) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Duration:     120,
		IsPublished:  true,
		VideoFileURL: "https://fake.test/video.mp4",
		ThumbnailURL: "https://fake.test/thumb.jpg",
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("创建测试视频失败: %v", err)
	}
	return video
}
