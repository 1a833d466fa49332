package main

import (
	"context"
	"fmt"
	"log"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/api"
	"github.com/tube24/tube24_go_server/internal/api/handler"
	"github.com/tube24/tube24_go_server/internal/database"
	"github.com/tube24/tube24_go_server/internal/live"
	"github.com/tube24/tube24_go_server/internal/pkg/cron"
	"github.com/tube24/tube24_go_server/internal/pkg/oauth"
	"github.com/tube24/tube24_go_server/internal/pkg/oss"
	"github.com/tube24/tube24_go_server/internal/pkg/pubsub"
	"github.com/tube24/tube24_go_server/internal/pkg/ws"
	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（未配置时缩略图上传不可用）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client ready")
	} else {
		log.Println("OSS not configured, thumbnail upload disabled")
	}

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	demoRepo := repository.NewDemoChannelRepository(rdb)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	channelService := service.NewChannelService(channelRepo, userRepo, ossClient, cfg)
	playlistService := service.NewPlaylistService(playlistRepo, channelRepo)
	scheduleService := service.NewScheduleService(channelRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, cfg)
	demoService := service.NewDemoService(demoRepo, cfg)

	// 直播事件：定时重算排班，经 Redis 广播给所有实例
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)
	broadcaster := live.NewBroadcaster(wsHub, scheduleService, publisher, subscriber, cfg.Live.TickSeconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broadcaster.Start(ctx)
	log.Println("Live broadcaster started")

	// 订阅到期清理定时任务
	cronService := cron.NewService(subscriptionService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	stateStore := oauth.NewStateStore(rdb)
	authHandler := handler.NewAuthHandler(authService, stateStore)
	userHandler := handler.NewUserHandler(authService)
	channelHandler := handler.NewChannelHandler(channelService, scheduleService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	demoHandler := handler.NewDemoHandler(demoService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, authService, publisher, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		channelHandler,
		playlistHandler,
		subscriptionHandler,
		demoHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
