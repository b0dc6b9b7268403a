package server

import (
	"context"
	"net/http"
	"time"

	"blog/internal/auth"
	"blog/internal/comments"
	"blog/internal/posts"
	"blog/internal/security"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthHandler)

	requireAuth := security.RequireAuth(s.tokens, s.cfg.JWT.HeaderPrefix)

	v1 := r.Group("/api/v1")
	auth.RegisterRoutes(v1, s.authService())
	posts.RegisterRoutes(v1, s.postService(), requireAuth)
	comments.RegisterRoutes(v1, s.commentService(), requireAuth)

	return r
}

// healthHandler reports database and cache status. A down database is a 503.
func (s *Server) healthHandler(c *gin.Context) {
	resp := make(map[string]any)

	dbHealth := s.db.Health(c.Request.Context())
	resp["database"] = dbHealth
	resp["redis"] = s.redisHealth(c.Request.Context())

	status := http.StatusOK
	if dbHealth["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (s *Server) redisHealth(ctx context.Context) map[string]string {
	if s.redis == nil {
		return map[string]string{"status": "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := s.redis.Ping(ctx).Err(); err != nil {
		return map[string]string{"status": "down", "error": err.Error()}
	}
	return map[string]string{"status": "up"}
}
