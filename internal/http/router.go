// Package httpapi wires the HTTP transport (Gin) to the item service,
// middleware, and route handlers. It centralizes cross-cutting concerns
// such as tracing, correlation IDs, logging, metrics, CORS, compression,
// rate limiting, and centralized error translation.
//
// Design goals:
//   - Observability first (request logging + Prometheus, optional OTel)
//   - Explicit, ordered pipeline composed once at startup
//   - Deterministic, minimal router setup; all dependencies injected
//   - One terminal stage formats every error body
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-items-backend/internal/config"
	"github.com/tbourn/go-items-backend/internal/domain"
	"github.com/tbourn/go-items-backend/internal/http/handlers"
	"github.com/tbourn/go-items-backend/internal/http/middleware"
	"github.com/tbourn/go-items-backend/internal/repo"
	"github.com/tbourn/go-items-backend/internal/services"
)

// startTime anchors the uptime reported by /health.
var startTime = time.Now()

// itemRepoShim adapts the repository free functions to the
// services.ItemRepo interface expected by the ItemService. This keeps
// services decoupled from the concrete repo package while reusing the
// existing functions.
type itemRepoShim struct{}

// CreateItem proxies repo.CreateItem.
func (itemRepoShim) CreateItem(ctx context.Context, db *gorm.DB, name string) (*domain.Item, error) {
	return repo.CreateItem(ctx, db, name)
}

// ListItems proxies repo.ListItems.
func (itemRepoShim) ListItems(ctx context.Context, db *gorm.DB) ([]domain.Item, error) {
	return repo.ListItems(ctx, db)
}

// GetItem proxies repo.GetItem.
func (itemRepoShim) GetItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	return repo.GetItem(ctx, db, id)
}

// UpdateItemName proxies repo.UpdateItemName.
func (itemRepoShim) UpdateItemName(ctx context.Context, db *gorm.DB, id int64, name string) (*domain.Item, error) {
	return repo.UpdateItemName(ctx, db, id, name)
}

// DeleteItem proxies repo.DeleteItem.
func (itemRepoShim) DeleteItem(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	return repo.DeleteItem(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given
// Gin engine. The pipeline is composed once, in a fixed order that affects
// observable behavior:
//
//  1. OpenTelemetry tracing (when enabled)
//  2. RequestID: generate/propagate correlation id
//  3. CORS: reflect any origin outside production, allow-list in production
//  4. Compression (gzip) for outgoing bodies
//  5. Structured request logging
//  6. Panic recovery
//  7. Body size limiter
//  8. Metrics (counter at start, duration histogram on completion)
//  9. Token-bucket rate limiter per client IP
//  10. Security headers
//  11. Terminal error translator (single formatter of error bodies)
//
// then the operational endpoints (/health, /metrics), the 404 fallback,
// and the /api/items resource routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// 1) Trace all HTTP requests (no-op unless enabled)
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) CORS posture: production reflects the configured allow-list
	// (denying all origins when the list is empty), every other
	// environment reflects the request origin. Credentials are
	// enabled in both postures, which is why AllowOriginFunc is used
	// instead of AllowAllOrigins outside production.
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	switch {
	case cfg.IsProduction() && len(cfg.AllowedOrigins) == 0:
		// No allow-list configured: serve without CORS allowances
		// instead of refusing to boot (cors.New rejects a config with
		// neither AllowOrigins nor AllowOriginFunc).
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	case cfg.IsProduction():
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	default:
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsCfg))

	// 4) Transparent response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 5) Structured access logging
	r.Use(middleware.Logger())

	// 6) Panic recovery to JSON 500 (after logger so panics are logged
	// with request context)
	r.Use(middleware.Recovery())

	// 7) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 8) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 9) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 10) Security headers
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{}))

	// 11) Terminal error translator. Registered last so it runs closest to
	// the handlers; logging and metrics above observe the status it writes.
	r.Use(middleware.ErrorHandler(cfg.IsProduction()))

	// Liveness/health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).Seconds(),
		})
	})

	// 404 fallback: logged as a warning, answered with a generic body.
	r.NoRoute(func(c *gin.Context) {
		middleware.LoggerFrom(c).Warn().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("route not found")
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	// Dependency injection: service ← repo/db
	svc := services.NewItemService(db, itemRepoShim{})
	h := handlers.New(svc)

	// Public API
	api := r.Group("/api/items")
	{
		api.POST("", h.CreateItem)
		api.GET("", h.ListItems)
		api.GET("/:id", h.GetItemByID)
		api.PUT("/:id", h.UpdateItem)
		api.DELETE("/:id", h.DeleteItem)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
