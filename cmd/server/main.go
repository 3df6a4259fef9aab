package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Darekar-Ishita/Trading-website/internal/api"
	"github.com/Darekar-Ishita/Trading-website/internal/config"
	"github.com/Darekar-Ishita/Trading-website/internal/market"
	"github.com/Darekar-Ishita/Trading-website/internal/middleware"
	"github.com/Darekar-Ishita/Trading-website/internal/service"
)

func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	wallets := service.NewWalletService(gormDB)
	trades := service.NewTradeService(gormDB, wallets, service.NewOrderBook(gormDB))
	watchlist := service.NewWatchlistService(gormDB)
	gateway := market.NewGateway(market.NewClient())

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Server is running")
	})

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", api.SignupHandler(gormDB, cfg.JWTSecret))
	authGroup.POST("/login", api.LoginHandler(gormDB, cfg.JWTSecret))

	// Market data routes (public)
	stocksGroup := r.Group("/api/stocks")
	stocksGroup.GET("/search", api.SearchStocksHandler(gateway))
	stocksGroup.GET("/live/:symbol", api.LiveStockHandler(gateway))
	stocksGroup.GET("/historical/:symbol", api.HistoricalStockHandler(gateway))

	// Everything below requires a bearer token
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	userGroup := r.Group("/api/user", auth)
	userGroup.GET("/profile", api.ProfileHandler(gormDB))

	walletGroup := r.Group("/api/wallet", auth)
	walletGroup.GET("", api.GetWalletHandler(wallets, redisClient))
	walletGroup.POST("/add-funds", api.AddFundsHandler(wallets, redisClient))

	tradeGroup := r.Group("/api/trade", auth)
	tradeGroup.POST("/buy", api.BuyHandler(trades, redisClient))
	tradeGroup.POST("/sell", api.SellHandler(trades, redisClient))
	tradeGroup.GET("/orders", api.GetOrdersHandler(trades, redisClient))

	watchlistGroup := r.Group("/api/watchlist", auth)
	watchlistGroup.GET("", api.GetWatchlistHandler(watchlist, redisClient))
	watchlistGroup.POST("", api.AddToWatchlistHandler(watchlist, redisClient))
	watchlistGroup.DELETE("/:symbol", api.RemoveFromWatchlistHandler(watchlist, redisClient))

	newsGroup := r.Group("/api/news", auth)
	newsGroup.GET("", api.NewsHandler(cfg.GNewsAPIKey))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
