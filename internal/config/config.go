package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             int    `envconfig:"port" default:"8080"`
	MySQLHost        string `envconfig:"mysql_host" default:"127.0.0.1"`
	MySQLPort        int    `envconfig:"mysql_port" default:"3306"`
	MySQLUser        string `envconfig:"mysql_user" default:"root"`
	MySQLPassword    string `envconfig:"mysql_password"`
	MySQLDB          string `envconfig:"mysql_db" default:"worknet"`
	RedisAddr        string `envconfig:"redis_addr" default:"127.0.0.1:6379"`
	RedisPassword    string `envconfig:"redis_password"`
	RedisDB          int    `envconfig:"redis_db" default:"0"`
	KafkaBrokers     string `envconfig:"kafka_brokers"` // 逗号分隔，留空则关注事件仅打日志
	KafkaTopic       string `envconfig:"kafka_topic" default:"worknet.follow-events"`
	SMTPHost         string `envconfig:"smtp_host"`
	SMTPPort         int    `envconfig:"smtp_port" default:"587"`
	SMTPUsername     string `envconfig:"smtp_username"`
	SMTPPassword     string `envconfig:"smtp_password"`
	SMTPFrom         string `envconfig:"smtp_from"`
	JWTAccessSecret  string `envconfig:"jwt_access_secret" default:"secret-key"`
	JWTRefreshSecret string `envconfig:"jwt_refresh_secret" default:"refresh-key"`
}

func Load() (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("worknet", c); err != nil {
		return nil, err
	}
	return c, nil
}

// MySQLDSN 拼接 gorm mysql 驱动使用的 DSN
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLDB)
}
