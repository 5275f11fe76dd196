package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
}

type StayHTTP interface {
	Preview(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Stays        StayHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, metrics *obs.Metrics, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	if metrics != nil {
		router.Use(metrics.GinMiddleware())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	router.Use(SessionMiddleware{}.Handle)

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/venues/:id/calendar", h.Availability.Calendar)
	}
	if h.Stays != nil {
		api.POST("/venues/:id/preview", h.Stays.Preview)
		api.POST("/venues/:id/stays", h.Stays.Create)
		api.PUT("/stays/:id", h.Stays.Update)
		api.DELETE("/stays/:id", h.Stays.Delete)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
