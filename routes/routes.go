package routes

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"stocksearch/config"
	"stocksearch/handlers"
	"stocksearch/models"
	"stocksearch/service"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config, store *models.RecordStore, charts *service.ChartBuilder, replier service.Replier, log *slog.Logger) {
	// Flash messages live in a signed cookie session
	sessionStore := cookie.NewStore([]byte(cfg.SecretKey))
	router.Use(sessions.Sessions("stocksearch", sessionStore))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	homeHandler := handlers.NewHomeHandler(store, log)
	priceHandler := handlers.NewPriceHandler(store, charts, log)
	webhookHandler := handlers.NewWebhookHandler(cfg.LineChannelSecret, replier, log)

	router.GET("/", homeHandler.ShowHome)
	router.POST("/", homeHandler.SubmitSearch)
	router.GET("/price/:ticker", priceHandler.ShowPrice)
	router.GET("/price/:ticker/chart.png", priceHandler.ChartPNG)
	router.GET("/delete", homeHandler.DeleteRecord)
	router.POST("/callback", webhookHandler.Callback)
}
