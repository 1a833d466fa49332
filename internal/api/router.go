package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/api/handler"
	"github.com/tube24/tube24_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	channelHandler      *handler.ChannelHandler
	playlistHandler     *handler.PlaylistHandler
	subscriptionHandler *handler.SubscriptionHandler
	demoHandler         *handler.DemoHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	channelHandler *handler.ChannelHandler,
	playlistHandler *handler.PlaylistHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	demoHandler *handler.DemoHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		channelHandler:      channelHandler,
		playlistHandler:     playlistHandler,
		subscriptionHandler: subscriptionHandler,
		demoHandler:         demoHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket（观众免登录，带 token 则以本名聊天）
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 套餐目录
		api.GET("/plans", r.subscriptionHandler.ListPlans)

		// 公开接口 - 体验频道
		demo := api.Group("/demo")
		{
			demo.POST("/channels", r.demoHandler.Create)
			demo.GET("/channels/:id", r.demoHandler.Get)
		}

		// 公开接口 - 直播页读取频道和排班
		public := api.Group("/channels")
		public.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			public.GET("/:id", r.channelHandler.Get)
			public.GET("/:id/live", r.channelHandler.Live)
			public.GET("/:id/playlists", r.playlistHandler.ListByChannel)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
			}

			// 频道管理
			channels := authenticated.Group("/channels")
			{
				channels.POST("", r.channelHandler.Create)
				channels.GET("", r.channelHandler.List)
				channels.PUT("/:id", r.channelHandler.Update)
				channels.DELETE("/:id", r.channelHandler.Delete)
				channels.POST("/:id/thumbnail", r.channelHandler.UploadThumbnail)
			}

			// 歌单管理
			playlists := authenticated.Group("/playlists")
			{
				playlists.POST("", r.playlistHandler.Create)
				playlists.PUT("/:id", r.playlistHandler.Update)
				playlists.DELETE("/:id", r.playlistHandler.Delete)
			}

			// 订阅
			subscription := authenticated.Group("/subscription")
			{
				subscription.GET("", r.subscriptionHandler.GetCurrent)
				subscription.POST("", r.subscriptionHandler.Subscribe)
				subscription.DELETE("", r.subscriptionHandler.Cancel)
				subscription.POST("/resume", r.subscriptionHandler.Resume)
			}
		}
	}

	return engine
}
