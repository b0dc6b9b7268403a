package posts

import (
	"context"
	"errors"
	"log/slog"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not the author of this post")
	ErrTitleTaken   = errors.New("post title already exists")
)

// Service handles business logic for posts with optional caching
type Service interface {
	Create(ctx context.Context, username string, req PostRequest) (*Post, error)
	Get(ctx context.Context, postID int64) (*Post, error)
	List(ctx context.Context, page PageRequest) (*PostPage, error)
	Update(ctx context.Context, username string, postID int64, req PostRequest) (*Post, error)
	Delete(ctx context.Context, username string, postID int64) error
}

// CommentCache drops the cached comment list of a post
type CommentCache interface {
	Invalidate(ctx context.Context, postID int64)
}

// Option configures the service
type Option func(*service)

// WithCommentCache clears a post's cached comments when the post is deleted
func WithCommentCache(c CommentCache) Option {
	return func(s *service) {
		s.comments = c
	}
}

type service struct {
	repo     Repository
	cache    Cache
	comments CommentCache
	logger   *slog.Logger
}

// NewService creates a posts service. cache may be nil.
func NewService(repo Repository, cache Cache, logger *slog.Logger, opts ...Option) Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &service{repo: repo, cache: cache, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, username string, req PostRequest) (*Post, error) {
	p := &Post{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Author:      username,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidatePages(ctx)
	}
	s.logger.Info("Post created", "post_id", p.ID, "username", username)
	return p, nil
}

func (s *service) Get(ctx context.Context, postID int64) (*Post, error) {
	if s.cache != nil {
		if p, ok := s.cache.GetPost(ctx, postID); ok {
			return p, nil
		}
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetPost(ctx, p)
	}
	return p, nil
}

func (s *service) List(ctx context.Context, page PageRequest) (*PostPage, error) {
	page = page.Normalize()

	if s.cache != nil {
		if result, ok := s.cache.GetPage(ctx, page); ok {
			return result, nil
		}
	}

	posts, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	result := newPostPage(posts, total, page)

	if s.cache != nil {
		s.cache.SetPage(ctx, page, result)
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, username string, postID int64, req PostRequest) (*Post, error) {
	if err := s.authorize(ctx, username, postID); err != nil {
		return nil, err
	}

	p := &Post{
		ID:          postID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, postID)
	s.logger.Info("Post updated", "post_id", postID, "username", username)
	return p, nil
}

func (s *service) Delete(ctx context.Context, username string, postID int64) error {
	if err := s.authorize(ctx, username, postID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	s.invalidate(ctx, postID)
	if s.comments != nil {
		s.comments.Invalidate(ctx, postID)
	}
	s.logger.Info("Post deleted", "post_id", postID, "username", username)
	return nil
}

// authorize loads the post from the store, not the cache, and checks ownership
func (s *service) authorize(ctx context.Context, username string, postID int64) error {
	existing, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if existing.Author != username {
		return ErrForbidden
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, postID int64) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePost(ctx, postID)
	s.cache.InvalidatePages(ctx)
}
