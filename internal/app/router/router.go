// Package router builds the gin engine and its route table.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	authhandler "lead_backend/internal/feature/auth/transport/handler"
	leadhandler "lead_backend/internal/feature/lead/transport/handler"
	"lead_backend/internal/platform/http/handler"
	"lead_backend/internal/platform/http/response"
	jwtmw "lead_backend/internal/platform/jwt"
	"lead_backend/internal/platform/logging"
	"lead_backend/internal/platform/metrics"
	"lead_backend/internal/platform/ratelimit"
)

// Options carries the HTTP-level settings of the engine.
type Options struct {
	FrontendURL     string
	RateLimit       int64
	RateLimitWindow time.Duration
	RateLimitStore  limiter.Store
}

// NewRouter wires middleware and routes.
// Middleware order: recovery, request log, metrics, CORS; /api adds the rate limit.
func NewRouter(opts Options, verifier jwtmw.TokenVerifier, auth *authhandler.AuthHandler, leads *leadhandler.LeadHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(response.Recovery))
	r.Use(logging.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{opts.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.NoRoute(response.NotFoundRoute)

	// scraped by prometheus; not rate limited
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if opts.RateLimitStore != nil {
		api.Use(ratelimit.Middleware(opts.RateLimitStore, opts.RateLimit, opts.RateLimitWindow))
	}

	// No authentication required
	api.GET("/health", handler.Health)
	api.HEAD("/health", handler.Health)
	api.OPTIONS("/health", handler.Health)
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	// Everything below requires a valid, unrevoked token
	gated := api.Group("")
	gated.Use(jwtmw.AuthRequired(verifier))
	{
		gated.GET("/auth/me", auth.Me)
		gated.POST("/auth/logout", auth.Logout)

		gated.POST("/leads", leads.Create)
		gated.GET("/leads", leads.List)
		gated.GET("/leads/:id", leads.Get)
		gated.PUT("/leads/:id", leads.Update)
		gated.DELETE("/leads/:id", leads.Delete)
	}

	return r
}
