// Package server assembles the gin engine: middleware, operational endpoints,
// the record RPC group and the page.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/entertext/handlers"
	"github.com/gogotex/entertext/internal/config"
	"github.com/gogotex/entertext/internal/page"
	"github.com/gogotex/entertext/internal/record/handler"
	"github.com/gogotex/entertext/internal/record/service"
	"github.com/gogotex/entertext/pkg/logger"
	"github.com/gogotex/entertext/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

var startTime = time.Now()

// NewRouter wires every route. rdb may be nil; it is only used for the Redis rate limiter.
func NewRouter(cfg *config.Config, svc service.Service, store Pinger, rdb *redis.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when the store answers
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		deps := map[string]bool{"store": store.Ping(ctx) == nil}
		ready := deps["store"]
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil && rdb.Ping(ctx).Err() == nil
			ready = ready && deps["redis"]
		}

		body := gin.H{"backend": cfg.Store.Backend, "deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	api := r.Group("/api")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	handler.RegisterRecordRoutes(api, svc)

	page.RegisterPageRoutes(r, svc, cfg.Server.SiteRoot)
	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	return cc
}
