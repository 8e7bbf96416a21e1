package main

import (
	"fmt"
	"log"
	"time"

	"github.com/justfortestingnothibghere/DataForge-Cloud/config"
	"github.com/justfortestingnothibghere/DataForge-Cloud/database"
	"github.com/justfortestingnothibghere/DataForge-Cloud/handlers"
	"github.com/justfortestingnothibghere/DataForge-Cloud/logger"
	"github.com/justfortestingnothibghere/DataForge-Cloud/middleware"
	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/services"
	"github.com/justfortestingnothibghere/DataForge-Cloud/storage"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env; real deployments set SECRET_KEY / DATABASE_URL directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Sync()

	if err := database.InitPostgres(&cfg.Database); err != nil {
		log.Fatalf("init postgres failed: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Upload{},
		&models.AnalyticsEvent{},
	); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	store, err := storage.NewDisk(cfg.Storage.BasePath)
	if err != nil {
		log.Fatalf("init storage failed: %v", err)
	}

	tokens := utils.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)

	repoContainer := repositories.NewGormRepositories(database.DB).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, store, tokens)
	handlers.SetServices(serviceContainer)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, cfg, repoContainer, tokens)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, cfg *config.Config, repos repositories.Container, tokens *utils.TokenManager) {
	r.GET("/health", handlers.HealthCheck)

	// Blobs are served straight off disk, mirroring the public uploads
	// mount access_url responses point at.
	r.Static("/uploads", cfg.Storage.BasePath)

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	gate := middleware.AuthMiddleware(tokens, repos.Users, cfg.JWT.CookieName)
	analytics := middleware.Analytics(repos.Analytics)

	auth := r.Group("/auth")
	{
		signupLimit := middleware.RateLimit(database.RedisClient, "signup", cfg.RateLimit.SignupPerMin, window)
		loginLimit := middleware.RateLimit(database.RedisClient, "login", cfg.RateLimit.LoginPerMin, window)
		auth.POST("/signup", signupLimit, handlers.Signup)
		auth.POST("/login", loginLimit, handlers.Login)

		protected := auth.Group("")
		protected.Use(gate)
		{
			protected.GET("/me", handlers.Me)
			protected.POST("/upgrade", handlers.Upgrade)
		}
	}

	api := r.Group("/api")
	{
		api.GET("/share/:item_id", handlers.GetShared)
		api.GET("/v2/:username", middleware.APIKeyAuth(repos.Users), analytics, handlers.GetUploadV2)

		protected := api.Group("")
		protected.Use(gate)
		{
			protected.POST("/upload", analytics, handlers.CreateUpload)
			protected.DELETE("/delete/:item_id", handlers.DeleteUpload)
			protected.GET("/analytics", handlers.GetAnalytics)
			protected.GET("/export", handlers.ExportData)
		}
	}

	admin := r.Group("/admin")
	admin.Use(gate, middleware.AdminOnly())
	{
		admin.GET("/", handlers.AdminDashboard)
		admin.DELETE("/user/:id", handlers.AdminDeleteUser)
	}
}
