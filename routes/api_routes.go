package routes

import (
	"github.com/gin-gonic/gin"

	"spinwin/internal/handlers"
	"spinwin/internal/middleware"
	"spinwin/internal/services"
	"spinwin/pkg/logger"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Analytics *handlers.AnalyticsHandler
	Customer  *handlers.CustomerHandler
}

// SetupAPIRoutes mounts the public and authenticated endpoints.
func SetupAPIRoutes(r *gin.Engine, h Handlers, authService services.AuthService, metrics *middleware.Metrics, log *logger.Logger) {
	if metrics != nil {
		r.GET("/metrics", metrics.Handler())
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)
		api.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(authService, log))
	{
		protected.GET("/spin-results", h.Analytics.GetSpinResults)
		protected.GET("/analytics", h.Analytics.GetAnalytics)
		protected.POST("/analytics", h.Analytics.GetAnalytics)

		customers := protected.Group("/customers")
		customers.GET("/search", h.Customer.SearchCustomers)
		customers.GET("/monthly", h.Customer.GetMonthlyCustomers)
		customers.GET("/:customerId/details", h.Customer.GetCustomerDetails)
	}
}

// NewRouter builds the engine with the shared middleware chain.
func NewRouter(h Handlers, authService services.AuthService, metrics *middleware.Metrics, limiter *middleware.IPRateLimiter, corsOrigins []string, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(corsOrigins),
		middleware.RequestLogger(log),
	)
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.RateLimit(limiter))

	SetupAPIRoutes(r, h, authService, metrics, log)
	return r
}
