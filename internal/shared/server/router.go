package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/feedback"
	"feedback-backend/internal/recommendations"
	"feedback-backend/internal/services/health"
	"feedback-backend/internal/shared/config"
	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/server/middleware"
	"feedback-backend/internal/weights"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config                config.Config
	Health                *health.Service
	FeedbackHandler       *feedback.Handler
	RecommendationHandler *recommendations.Handler
	WeightsHandler        *weights.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"POLLING": {Rate: 30, Burst: 60},
			},
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	deps.FeedbackHandler.RegisterRoutes(api)
	deps.RecommendationHandler.RegisterRoutes(api)
	deps.WeightsHandler.RegisterRoutes(api)

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return "POLLING"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
