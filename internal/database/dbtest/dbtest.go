//go:build integration

// Package dbtest starts a throwaway PostgreSQL container for integration tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"blog/internal/config"
	"blog/internal/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// New returns a migrated database.Service backed by a fresh container
func New(t *testing.T) database.Service {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("blog"),
		postgres.WithUsername("blog"),
		postgres.WithPassword("blog"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := database.New(ctx, config.Database{URL: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	if err := database.Migrate(ctx, config.Database{URL: dsn}, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedPost inserts a post and returns its id
func SeedPost(t *testing.T, db database.Service, title, author string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO posts (title, description, content, author) VALUES ($1, $2, $3, $4) RETURNING id`,
		title, "seeded description", "seeded content", author,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return id
}
