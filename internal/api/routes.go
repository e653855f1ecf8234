package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shoom_backend/internal/api/handlers"
	"shoom_backend/internal/middleware"
	"shoom_backend/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 前端從另一個來源載入，允許跨域並攜帶憑證
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Registry)
	tokenHandler := handlers.NewTokenHandler(services.Token)
	wsHandler := handlers.NewWebSocketHandler(services.Gateway)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 會議憑證簽發
		api.GET("/token", tokenHandler.IssueToken)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// 辯論室相關
		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)   // 大廳的房間列表
			rooms.POST("", roomHandler.CreateRoom) // 從辯題創建房間
			rooms.GET("/:id", roomHandler.GetRoom) // 獲取房間摘要

			// WebSocket 連接點，房間不存在時惰性創建
			rooms.GET("/:id/ws", wsHandler.HandleWebSocket)
		}
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.GET("/me", authHandler.Me)
	}
}
