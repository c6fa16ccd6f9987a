package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"worknet/internal/config"
	"worknet/internal/model"
	"worknet/internal/pkg"
	"worknet/internal/repository/mysql"
	"worknet/internal/repository/redis"
	"worknet/internal/router"
	"worknet/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN()); err != nil {
		log.Fatalf("init mysql: %v", err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("init redis: %v", err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.CompanyFollower{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Save{},
		&model.FollowOutbox{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 关注事件外发，未配置kafka时只打日志
	sender := service.Sender(service.LogSender)
	if cfg.KafkaBrokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(cfg.KafkaBrokers, ","),
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatalf("init kafka: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewOutboxRelayer(sender).Run(ctx)

	// 后台对账，修正冗余计数的漂移
	go service.NewPostCountReconciler().Run(ctx)

	// Gin
	r := router.InitRouter(cfg)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
