package auth

import (
	"context"
	"fmt"

	"blog/internal/database"
)

// Repository stores user accounts
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByLogin(ctx context.Context, usernameOrEmail string) (*User, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed user repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

// Create inserts u and maps unique violations to ErrUsernameExists / ErrEmailExists
func (r *pgRepository) Create(ctx context.Context, u *User) error {
	const q = `
		INSERT INTO users (name, username, email, password, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, q, u.Name, u.Username, u.Email, u.Password).Scan(&u.ID, &u.CreatedAt)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameExists
	case database.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailExists
	default:
		return fmt.Errorf("failed to create user: %w", err)
	}
}

// FindByLogin looks a user up by username or email
func (r *pgRepository) FindByLogin(ctx context.Context, usernameOrEmail string) (*User, error) {
	const q = `
		SELECT id, name, username, email, password, created_at
		FROM users
		WHERE username = $1 OR email = $1
		LIMIT 1
	`
	var u User
	err := r.db.QueryRow(ctx, q, usernameOrEmail).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Password, &u.CreatedAt)
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
