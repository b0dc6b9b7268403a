// Package auth registers accounts and issues bearer tokens for them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is the parent of the username and email conflicts
	ErrUserExists = errors.New("user already exists")
	// ErrUsernameExists is returned when username is already taken
	ErrUsernameExists = fmt.Errorf("username already taken: %w", ErrUserExists)
	// ErrEmailExists is returned when email is already registered
	ErrEmailExists = fmt.Errorf("email already registered: %w", ErrUserExists)
	// ErrUserNotFound is returned by the repository when no account matches
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials hides whether the login or the password was wrong
	ErrBadCredentials = errors.New("invalid username/email or password")
)

// TokenIssuer signs access tokens whose subject is the username
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}

// Service defines the authentication service interface
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Signin(ctx context.Context, req SigninRequest) (*TokenResponse, error)
}

type service struct {
	repo   Repository
	issuer TokenIssuer
	cost   int
	logger *slog.Logger
}

// NewService creates a new authentication service
func NewService(repo Repository, issuer TokenIssuer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		issuer: issuer,
		cost:   bcrypt.DefaultCost,
		logger: logger,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (*TokenResponse, error) {
	u, err := s.repo.FindByLogin(ctx, req.UsernameOrEmail)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("Signin rejected", "username", u.Username)
		return nil, ErrBadCredentials
	}

	token, err := s.issuer.GenerateToken(u.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &TokenResponse{AccessToken: token, TokenType: "Bearer"}, nil
}
