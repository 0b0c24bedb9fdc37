package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"nutribot_backend/platform/config"
	"nutribot_backend/platform/httpkit"
	"nutribot_backend/platform/logger"
)

// NewRouter builds the gin engine with the platform middleware stack and
// the webhook routes mounted.
func NewRouter(cfg config.HTTPConfig, handler *Handler, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())

	// The webhook is server-to-server; CORS only matters when a browser
	// origin is explicitly configured.
	if cfg.GetCORSAllowAll() || len(cfg.GetCORSOrigins()) > 0 {
		corsConfig := cors.DefaultConfig()
		if cfg.GetCORSAllowAll() {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.GetCORSOrigins()
		}
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders,
			httpkit.HeaderRequestID, httpkit.HeaderWebhookSecret)
		engine.Use(cors.New(corsConfig))
	}

	limiter := httpkit.NewIPRateLimiter(rate.Limit(20), 40, log)

	engine.GET("/healthz", handler.Healthz)

	v1 := engine.Group("/v1")
	v1.Use(limiter.RateLimit())
	v1.Use(httpkit.WebhookAuth(cfg.GetWebhookSecret()))
	v1.POST("/events", handler.HandleEvent)

	return engine
}
