package comments

import (
	"context"
	"fmt"

	"blog/internal/database"
)

// Repository is the persistence contract of the comment service
type Repository interface {
	PostExists(ctx context.Context, postID int64) (bool, error)
	Create(ctx context.Context, c *Comment) error
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	GetByID(ctx context.Context, commentID int64) (*Comment, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, commentID int64) error
	AddLike(ctx context.Context, commentID int64, username string) (bool, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const commentColumns = `id, post_id, name, email, body, author, likes, created_at, updated_at`

func (r *pgRepository) PostExists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	return exists, nil
}

func (r *pgRepository) Create(ctx context.Context, c *Comment) error {
	const q = `
		INSERT INTO comments (post_id, name, email, body, author, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, NOW(), NOW())
		RETURNING id, likes, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q, c.PostID, c.Name, c.Email, c.Body, c.Author).
		Scan(&c.ID, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *pgRepository) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Author, &c.Likes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func (r *pgRepository) GetByID(ctx context.Context, commentID int64) (*Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var c Comment
	err := r.db.QueryRow(ctx, q, commentID).Scan(
		&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Author, &c.Likes, &c.CreatedAt, &c.UpdatedAt,
	)
	if database.IsNotFound(err) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *pgRepository) Update(ctx context.Context, c *Comment) error {
	const q = `
		UPDATE comments
		SET name = $1, email = $2, body = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING post_id, author, likes, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q, c.Name, c.Email, c.Body, c.ID).
		Scan(&c.PostID, &c.Author, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	if database.IsNotFound(err) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, commentID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// AddLike records username's like and bumps the counter in one statement.
// It reports false when the user had already liked the comment.
func (r *pgRepository) AddLike(ctx context.Context, commentID int64, username string) (bool, error) {
	const q = `
		WITH ins AS (
			INSERT INTO comment_likes (comment_id, username, created_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (comment_id, username) DO NOTHING
			RETURNING comment_id
		)
		UPDATE comments SET likes = likes + 1
		WHERE id IN (SELECT comment_id FROM ins)
	`
	tag, err := r.db.Exec(ctx, q, commentID, username)
	if err != nil {
		return false, fmt.Errorf("like comment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
