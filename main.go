package main

import (
	"fmt"
	"log"
	"time"

	"stocksearch/config"
	"stocksearch/logger"
	"stocksearch/models"
	"stocksearch/routes"
	"stocksearch/service"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("Stock Search")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slogger := logger.New(cfg.LogLevel)

	pool := models.PoolConfig{
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetime) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTime) * time.Minute,
	}

	// Initialize database
	db, err := models.InitDatabase(cfg.DatabaseURL, pool)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}()

	store := models.NewRecordStore(db)

	var provider service.PriceProvider
	switch cfg.PriceProvider {
	case "polygon":
		provider = service.NewPolygonProvider(cfg.PolygonAPIKey)
	default:
		provider = service.NewYahooProvider()
	}
	charts := service.NewChartBuilder(provider)

	replier, err := service.NewLineReplier(cfg.LineAccessToken)
	if err != nil {
		log.Fatalf("Failed to create LINE client: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.LoadHTMLGlob("templates/*.html")

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "stocksearch",
		})
	})

	routes.SetupRoutes(router, cfg, store, charts, replier, slogger)

	slogger.Info("starting server", "port", cfg.Port, "provider", cfg.PriceProvider)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
