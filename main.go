package main

import (
	"fmt"
	"net/http"
	"time"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"supportchat/config"
	"supportchat/controller"
	"supportchat/model"
	"supportchat/platform"
	"supportchat/service"
)

var logger = platform.Logger

// CORSMiddleware ...
// Only the configured frontend origin is allowed; preflight requests are
// answered immediately.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Origin, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		requestId := c.GetString("requestId")

		logger.Infof(
			" [%s] %d | %v | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
		)
	}
}

// RecoveryHandler turns a handler panic into the generic 500 body. The
// recovered value only appears in development mode, like every other
// server-side error detail.
func RecoveryHandler(cfg *config.Config) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Warnf("[%s] panic recovered: %v", c.GetString("requestId"), recovered)
		body := gin.H{"error": "Internal server error"}
		if cfg.IsDev() {
			body["details"] = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}

func main() {
	//Load the .env file
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using environment as-is")
	}

	cfg := config.Load()

	db, err := platform.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	if err := model.InstallDB(db); err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}
	store := model.NewStore(db)

	llmClient := platform.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
	if llmClient == nil {
		logger.Warn("LLM_API_KEY not set, chat replies degrade to the fixed unavailability message")
	}
	replyService := service.NewReplyService(llmClient, cfg.LLMModel)

	r := gin.New()
	r.Use(gin.CustomRecovery(RecoveryHandler(cfg)))
	r.Use(CORSMiddleware(cfg.AllowedOrigin))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	chat := controller.NewChatController(store, replyService, cfg)
	health := controller.NewHealthController(replyService)

	r.POST("/chat/message", chat.Message)
	r.GET("/chat/history/:sessionId", chat.History)
	r.GET("/health", health.Health)

	// Client shell
	r.StaticFile("/", "./web/index.html")
	r.StaticFile("/app.js", "./web/app.js")
	r.StaticFile("/styles.css", "./web/styles.css")

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	stats := service.NewStatsService(store)
	c := cron.New()
	c.AddFunc("0 0 * * *", stats.LogDailyStats)
	c.Start()

	logger.Infof("Server started on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
