package rabbitmq

import (
	"Lyra_Tube/pkg/config"

	"github.com/streadway/amqp"
)

// InitRabbitMQ 初始化RabbitMQ连接
func InitRabbitMQ() (*amqp.Connection, error) {
	conn, err := amqp.Dial(config.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
