package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// 非机密的配置走yaml文件，机密（JWT秘钥、数据库密码）走.env环境变量
var (
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RabbitMQURL string

	AWSRegion string
	S3Bucket  string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
)

func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs/")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("读取配置文件失败: %s", err)
	}

	ServerPort = viper.GetString("server.port")
	MySQLDSN = viper.GetString("mysql.dsn")
	RedisAddr = viper.GetString("redis.addr")
	RabbitMQURL = viper.GetString("rabbitmq.url")

	AWSRegion = viper.GetString("aws.region")
	S3Bucket = viper.GetString("aws.s3_bucket")

	AccessTokenTTL = viper.GetDuration("token.access_ttl")
	RefreshTokenTTL = viper.GetDuration("token.refresh_ttl")

	if AccessTokenTTL == 0 {
		AccessTokenTTL = 15 * time.Minute
	}
	if RefreshTokenTTL == 0 {
		RefreshTokenTTL = 7 * 24 * time.Hour
	}
}
