package comments

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotInPost = errors.New("comment does not belong to post")
	ErrInvalidInput     = errors.New("invalid input")
)

// Service is the comment business logic behind the HTTP handlers
type Service interface {
	Create(ctx context.Context, username string, postID int64, req CommentRequest) (*Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	Get(ctx context.Context, postID, commentID int64) (*Comment, error)
	Update(ctx context.Context, postID, commentID int64, req CommentRequest) (*Comment, error)
	Delete(ctx context.Context, postID, commentID int64) error
	Like(ctx context.Context, username string, commentID int64) error
}

// Publisher delivers comment events. Implementations must not block on delivery.
type Publisher interface {
	Publish(key string, event any) error
}

type service struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	logger    *slog.Logger
}

// NewService wires the comment service. cache and publisher may be nil.
func NewService(repo Repository, cache Cache, publisher Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, username string, postID int64, req CommentRequest) (*Comment, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	c := &Comment{
		PostID: postID,
		Name:   req.Name,
		Email:  req.Email,
		Body:   req.Body,
		Author: username,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx, postID)
	s.publish(EventCreated, c.ID, postID, username)
	s.logger.Info("Comment created", "comment_id", c.ID, "post_id", postID, "username", username)

	return c, nil
}

func (s *service) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	if s.cache != nil {
		if list, ok := s.cache.GetList(ctx, postID); ok {
			return list, nil
		}
	}

	list, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, postID, list)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, postID, commentID int64) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, ErrCommentNotInPost
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, postID, commentID int64, req CommentRequest) (*Comment, error) {
	if _, err := s.Get(ctx, postID, commentID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:    commentID,
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Body,
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx, postID)
	return c, nil
}

func (s *service) Delete(ctx context.Context, postID, commentID int64) error {
	if _, err := s.Get(ctx, postID, commentID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.invalidate(ctx, postID)
	s.publish(EventDeleted, commentID, postID, "")
	return nil
}

// Like counts at most one like per user; repeated likes are accepted silently
func (s *service) Like(ctx context.Context, username string, commentID int64) error {
	if username == "" {
		return ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	added, err := s.repo.AddLike(ctx, commentID, username)
	if err != nil {
		return err
	}
	if !added {
		s.logger.Debug("Comment already liked", "comment_id", commentID, "username", username)
		return nil
	}

	s.invalidate(ctx, c.PostID)
	s.publish(EventLiked, commentID, c.PostID, username)
	return nil
}

func (s *service) invalidate(ctx context.Context, postID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, postID)
	}
}

func (s *service) publish(t EventType, commentID, postID int64, username string) {
	if s.publisher == nil {
		return
	}
	ev := Event{
		MessageID: uuid.New().String(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		CommentID: commentID,
		PostID:    postID,
		Username:  username,
	}
	if err := s.publisher.Publish(ev.MessageID, ev); err != nil {
		s.logger.Error("Failed to publish comment event",
			"event_type", t,
			"comment_id", commentID,
			"error", err)
	}
}
