package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(ticketHandler *handlers.TicketHandler, analyticsHandler *handlers.AnalyticsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/tickets", ticketHandler.List)
		api.POST("/tickets", ticketHandler.Create)
		api.PUT("/tickets/:id", ticketHandler.Update)
		api.DELETE("/tickets/:id", ticketHandler.Delete)
		api.POST("/tickets/analyze", ticketHandler.Analyze)
		api.POST("/tickets/refresh", ticketHandler.Refresh)

		api.GET("/summary", analyticsHandler.Summary)
		api.GET("/quota", analyticsHandler.GetQuota)
		api.PUT("/quota", analyticsHandler.UpdateQuota)
		api.POST("/quota/next-round", analyticsHandler.NextRound)

		api.GET("/forecast", analyticsHandler.Forecast)
		api.GET("/reports/daily", analyticsHandler.DailyReport)
		api.GET("/reports/monthly", analyticsHandler.MonthlyReport)
		api.GET("/reports/series", analyticsHandler.Series)
		api.GET("/export/csv", analyticsHandler.ExportCSV)
		api.GET("/lucky-days", analyticsHandler.LuckyDays)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
