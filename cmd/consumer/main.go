package main

import (
	"encoding/json"
	"errors"
	"log"

	"Lyra_Tube/internal/data"
	"Lyra_Tube/internal/repository"
	"Lyra_Tube/internal/service"
	"Lyra_Tube/pkg/config"
	"Lyra_Tube/pkg/logger"
	"Lyra_Tube/pkg/rabbitmq"
	"Lyra_Tube/pkg/redis"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：异步消费播放事件，事务性地完成播放量+1和观看历史写入，再反过来失效缓存
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	config.Load()
	logger.InitLogger()

	// 连接数据库
	db, err := gorm.Open(gorm_mysql.Open(config.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}
	// 连接RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	// 播放量变了，缓存里的视频信息就过期了，消费者要能主动失效缓存
	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到Redis: %v", err)
	}

	videoRepo := repository.NewVideoRepository(db, redisClient)
	userRepo := repository.NewUserRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, userRepo)

	consumeViews(rabbitMQConn, uow, videoRepo)
}

// 播放事件消费者：1、通过mq的TCP连接创建channel 2、声明队列并注册消费者
// 3、利用无缓冲通道持续消费消息 4、工作单元保证播放量和观看历史"一荣俱荣，一损俱损"
func consumeViews(conn *amqp.Connection, uow data.UnitOfWork, videoRepo repository.VideoRepository) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(service.ViewQueueName, true, false, false, false, nil); err != nil {
		logger.Log.Fatalf("无法声明播放事件队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.ViewQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册播放事件消费者: %v", err)
	}

	// 创建一个没有任何缓冲的bool类型通道
	forever := make(chan bool)

	go func() {
		// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会"阻塞"
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条播放事件")

			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 对于无法解析的"坏消息"，通知mq处理失败并直接删除
				d.Nack(false, false)
				continue
			}
			logCtx = logCtx.WithField("user_id", msg.UserID).WithField("video_id", msg.VideoID)

			// 使用"工作单元"来执行事务性操作
			err := uow.Execute(func(repos *data.TransactionalRepositories) error {
				if err := repos.VideoRepo.IncrementViews(msg.VideoID); err != nil {
					return err
				}
				// 同一用户重看同一视频时，唯一索引让这条写入静默跳过
				return repos.UserRepo.AddWatchHistory(msg.UserID, msg.VideoID)
			})

			// 根据数据库操作的结果，来决定如何"确认"消息
			if err != nil {
				var mysqlErr *mysql.MySQLError
				// 用errors.As来检查错误的"根"是不是一个MySQLError
				if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
					// 错误号 1062 就是 "Duplicate entry"，一次重复消费，确认为成功
					logCtx.WithError(err).Warn("处理消息时出现重复键错误，可能是一次重复消费，消息将被确认为成功。")
					d.Ack(false)
				} else {
					// 其他类型错误，才要求重试
					logCtx.WithError(err).Error("处理消息失败，将进行重试")
					d.Nack(false, true)
				}
				continue
			}

			// 事务提交后再失效缓存，下一次详情读取会带着新播放量回填
			if err := videoRepo.DeleteVideoCache(msg.VideoID); err != nil {
				logCtx.WithError(err).Warn("缓存失效失败，等TTL自然过期")
			}

			d.Ack(false)
		}
	}()

	logger.Log.Info(" [*] 等待播放事件中. 按 CTRL+C 退出")
	// 尝试从forever通道里接收一个值，但没有发送者，这会阻止main函数退出
	<-forever
}
