package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"shoom_backend/internal/api"
	"shoom_backend/internal/models"
	"shoom_backend/internal/repository"
	"shoom_backend/internal/service"
	"shoom_backend/internal/storage"
	"shoom_backend/internal/utils"
	"shoom_backend/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 設置簽發用戶 token 的密鑰
	utils.SetJWTSecret(cfg.JWT.Secret)

	// 初始化資料庫連接
	// 只有用戶帳號需要持久化，房間全部活在記憶體裡
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
