// Package server assembles the blog HTTP server from its stores, caches and
// domain services.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"blog/internal/auth"
	"blog/internal/comments"
	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/kafka"
	"blog/internal/posts"
	"blog/internal/security"

	"github.com/redis/go-redis/v9"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	db       database.Service
	redis    *redis.Client
	producer *kafka.Producer
	tokens   *security.TokenProvider
}

// New connects the database, the optional Redis cache and the optional Kafka
// producer. Redis being unreachable disables caching instead of failing.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := security.NewTokenProvider(&security.Config{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration(),
	})
	if err != nil {
		return nil, fmt.Errorf("token provider: %w", err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.New(dbCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	logger.Info("Database service initialized")

	s := &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		tokens: tokens,
	}

	if cfg.Redis.Addr != "" {
		s.redis = connectRedis(ctx, cfg.Redis, logger)
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		s.producer = producer
	}

	return s, nil
}

func connectRedis(ctx context.Context, cfg config.Redis, logger *slog.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed, caching disabled", "addr", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil
	}
	logger.Info("Redis cache connected", "addr", cfg.Addr)
	return rdb
}

// HTTPServer returns an http.Server serving the blog API
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// Close releases the producer, the cache client and the pool, in that order
func (s *Server) Close() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close redis client", "error", err)
		}
	}
	s.db.Close()
}

func (s *Server) authService() auth.Service {
	return auth.NewService(auth.NewRepository(s.db), s.tokens, s.logger)
}

func (s *Server) postService() posts.Service {
	var cache posts.Cache
	var opts []posts.Option
	if s.redis != nil {
		cache = posts.NewRedisCache(s.redis, s.cfg.Redis.CacheTTL)
		opts = append(opts, posts.WithCommentCache(comments.NewRedisCache(s.redis, s.cfg.Redis.CacheTTL)))
	}
	return posts.NewService(posts.NewRepository(s.db), cache, s.logger, opts...)
}

func (s *Server) commentService() comments.Service {
	var cache comments.Cache
	if s.redis != nil {
		cache = comments.NewRedisCache(s.redis, s.cfg.Redis.CacheTTL)
	}
	var publisher comments.Publisher
	if s.producer != nil {
		publisher = s.producer
	}
	return comments.NewService(comments.NewRepository(s.db), cache, publisher, s.logger)
}
