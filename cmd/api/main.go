package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hero-quest-backend/internal/config"
	"hero-quest-backend/internal/handlers"
	"hero-quest-backend/internal/middleware"
	"hero-quest-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	gameService := services.NewGameService(redisService, services.SystemClock())
	if err := gameService.BootstrapAdmin(context.Background(), cfg.AdminAddress); err != nil {
		log.Fatalf("Failed to seed admin set: %v", err)
	}

	wsHandler := handlers.NewWebSocketHandler(gameService)
	gameService.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(redisService, jwtService)
	playerHandler := handlers.NewPlayerHandler(gameService)
	adminHandler := handlers.NewAdminHandler(gameService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisService))
	{
		protected.POST("/logout", authHandler.Logout)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		protected.POST("/players", playerHandler.Register)
		protected.GET("/players/me", playerHandler.GetPlayerInfo)
		protected.GET("/players/me/credit", playerHandler.GetCredit)
		protected.GET("/players/me/ledger", playerHandler.GetLedger)

		protected.POST("/rounds/:n/play", playerHandler.PlayRound)
		protected.POST("/rounds/:n/treasure", playerHandler.OpenTreasure)
		protected.POST("/credits/claim", playerHandler.ClaimCredit)

		protected.GET("/leaderboard", playerHandler.GetLeaderboard)

		admin := protected.Group("/admin")
		{
			admin.POST("/rounds/:n/certify", adminHandler.CertifyRound)
			admin.POST("/credits/grant", adminHandler.GrantCredit)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
