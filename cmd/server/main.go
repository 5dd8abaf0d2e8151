package main

import (
	"log"

	"Lyra_Tube/internal/handler"
	"Lyra_Tube/internal/model"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/internal/router"
	"Lyra_Tube/internal/service"
	"Lyra_Tube/pkg/config"
	"Lyra_Tube/pkg/logger"
	"Lyra_Tube/pkg/rabbitmq"
	"Lyra_Tube/pkg/redis"
	"Lyra_Tube/pkg/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件（JWT秘钥、AWS凭证等机密）
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	// 非机密配置走yaml
	config.Load()

	// 初始化logger
	logger.InitLogger()

	// 初始化Redis
	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 初始化RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close() // 确保程序退出时关闭连接
	logger.Log.Info("RabbitMQ连接成功")

	// 初始化对象存储
	blobStore, err := storage.NewS3Store()
	if err != nil {
		logger.Log.Fatalf("无法初始化对象存储: %v", err)
	}
	logger.Log.Info("对象存储初始化成功")

	// TranslateError把各方言的唯一索引冲突统一成gorm.ErrDuplicatedKey，service层据此识别并发注册撞库
	db, err := gorm.Open(mysql.Open(config.MySQLDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")

	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
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
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	viewPublisher := service.NewAMQPViewPublisher(rabbitMQConn)

	userService := service.NewUserService(userRepo, blobStore)
	videoService := service.NewVideoService(videoRepo, blobStore, viewPublisher)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo)
	dashboardService := service.NewDashboardService(videoRepo)

	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	r := router.SetupRouter(
		userHandler,
		videoHandler,
		commentHandler,
		likeHandler,
		subscriptionHandler,
		playlistHandler,
		tweetHandler,
		dashboardHandler,
	)

	logger.Log.Printf("服务器将在%s端口启动", config.ServerPort)
	if err := r.Run(config.ServerPort); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
