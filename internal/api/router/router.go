package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"github.com/vku-onelove/alert-notifier/internal/api/handlers/notification"
	"github.com/vku-onelove/alert-notifier/internal/api/respond"
	"github.com/vku-onelove/alert-notifier/internal/middlewares"
)

func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")
	{
		api.POST("", handler.Create)
		api.GET("/jobs/:id", handler.JobStatus)
		api.GET("/dead", handler.ListFailed)
	}

	e.GET("/health", func(c *ginext.Context) {
		respond.OK(c.Writer, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	metricsHandler := promhttp.Handler()
	e.GET("/metrics", func(c *ginext.Context) {
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	return e
}
