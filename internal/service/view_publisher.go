package service

import (
	"encoding/json"

	"Lyra_Tube/pkg/logger"

	"github.com/streadway/amqp"
)

const ViewQueueName = "lyra.view.queue"

// ViewMessage 是一次视频播放事件，由观看接口发出、消费者进程异步落库
type ViewMessage struct {
	UserID  uint64 `json:"user_id"`
	VideoID uint64 `json:"video_id"`
}

// ViewPublisher 抽象播放事件的投递，测试时注入内存假实现
type ViewPublisher interface {
	PublishView(msg ViewMessage) error
}

type amqpViewPublisher struct {
	conn *amqp.Connection
}

func NewAMQPViewPublisher(conn *amqp.Connection) ViewPublisher {
	return &amqpViewPublisher{conn: conn}
}

// PublishView 发布播放事件到RabbitMQ：1、每次新开channel用完即关（channel不是并发安全的）
// 2、声明队列保证存在 3、持久化投递，消费者侧去重
func (p *amqpViewPublisher) PublishView(msg ViewMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(ViewQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	err = ch.Publish("", ViewQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		logger.Log.WithError(err).Error("播放事件投递失败")
		return err
	}
	return nil
}
