// cmd/seeder/main.go

package main

import (
	"fmt"
	"log"
	"math/rand"

	"Lyra_Tube/internal/model"
	"Lyra_Tube/pkg/config"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	if err := godotenv.Load(); err != nil {
		log.Fatalf("❌ .env文件加载失败")
	}
	config.Load()

	// --- 1. 连接数据库 ---
	db, err := gorm.Open(mysql.Open(config.MySQLDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	fmt.Println("🧹 正在清理旧数据...")
	// 为了确保每次填充都是干净的，先删除旧表再重建。注意：这将删除所有数据！
	db.Migrator().DropTable(
		&model.WatchHistory{},
		&model.PlaylistVideo{},
		&model.Playlist{},
		&model.Tweet{},
		&model.Subscription{},
		&model.Like{},
		&model.Comment{},
		&model.Video{},
		&model.User{},
	)
	fmt.Println("✅ 旧表删除成功!")

	// 重新迁移，创建新表
	db.AutoMigrate(
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
	fmt.Println("✅ 数据库迁移成功!")

	// --- 3. 创建用户 ---
	fmt.Println("👥 正在创建用户...")
	userCount := 100
	// 为所有用户设置一个简单的默认密码 "password"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username: faker.Username(),
			Email:    faker.Email(),
			Password: string(hashedPassword),
		}
		db.Create(&user)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", userCount)

	// --- 4. 创建视频 ---
	fmt.Println("🎬 正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			// 从已创建的用户中随机选择一个作为作者，rand.Intn(userCount)+1 落在 [1, 100]
			OwnerID:      uint64(rand.Intn(userCount) + 1),
			Title:        faker.Sentence(),  // 生成一个随机的句子作为标题
			Description:  faker.Paragraph(), // 生成一个随机的段落作为简介
			Duration:     float64(rand.Intn(600) + 30),
			Views:        uint64(rand.Intn(100000)),
			IsPublished:  rand.Intn(10) > 1, // 少量草稿
			VideoFileURL: "https://test.com/video.mp4",
			ThumbnailURL: "https://test.com/thumbnail.jpg",
		}
		db.Create(&video)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 创建随机订阅 ---
	fmt.Println("📺 正在创建随机订阅...")
	subCount := 800
	for i := 0; i < subCount; i++ {
		subscriberID := uint64(rand.Intn(userCount) + 1)
		channelID := uint64(rand.Intn(userCount) + 1)
		if subscriberID == channelID {
			continue // 不能订阅自己
		}
		sub := model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		// 尝试插入，如果因为唯一键冲突失败，就什么都不做
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机订阅!\n", subCount)

	// --- 6. 创建评论和推文 ---
	fmt.Println("💬 正在创建评论和推文...")
	commentCount := 1000
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: uint64(rand.Intn(videoCount) + 1),
			OwnerID: uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&comment)
	}
	tweetCount := 300
	for i := 0; i < tweetCount; i++ {
		tweet := model.Tweet{
			OwnerID: uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&tweet)
	}
	fmt.Printf("✅ 成功创建 %d 条评论和 %d 条推文!\n", commentCount, tweetCount)

	// --- 7. 创建随机点赞（三类目标混着来） ---
	fmt.Println("👍 正在创建随机点赞...")
	likeCount := 2000
	kinds := []struct {
		kind string
		max  int
	}{
		{model.LikeTargetVideo, videoCount},
		{model.LikeTargetComment, commentCount},
		{model.LikeTargetTweet, tweetCount},
	}
	for i := 0; i < likeCount; i++ {
		k := kinds[rand.Intn(len(kinds))]
		like := model.Like{
			UserID:     uint64(rand.Intn(userCount) + 1),
			TargetKind: k.kind,
			TargetID:   uint64(rand.Intn(k.max) + 1),
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_kind"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	// --- 8. 创建播放列表 ---
	fmt.Println("🎞️ 正在创建播放列表...")
	playlistCount := 150
	for i := 0; i < playlistCount; i++ {
		playlist := model.Playlist{
			OwnerID:     uint64(rand.Intn(userCount) + 1),
			Name:        faker.Word(),
			Description: faker.Sentence(),
		}
		db.Create(&playlist)

		// 每个列表塞几条视频，position按加入顺序递增
		n := rand.Intn(5) + 1
		for pos := 1; pos <= n; pos++ {
			pv := model.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    uint64(rand.Intn(videoCount) + 1),
				Position:   uint64(pos),
			}
			db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "playlist_id"}, {Name: "video_id"}},
				DoNothing: true,
			}).Create(&pv)
		}
	}
	fmt.Printf("✅ 成功创建 %d 个播放列表!\n", playlistCount)

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}
