package posts

import (
	"context"
	"fmt"
	"strings"

	"blog/internal/database"
)

// Repository is the persistence contract of the post service
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, postID int64) (*Post, error)
	List(ctx context.Context, page PageRequest) ([]Post, int64, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, postID int64) error
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed posts repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const postColumns = `id, title, description, content, author, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner, p *Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Content, &p.Author, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts p and fills its generated fields
func (r *pgRepository) Create(ctx context.Context, p *Post) error {
	const q = `
		INSERT INTO posts (title, description, content, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q, p.Title, p.Description, p.Content, p.Author).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if database.IsUniqueViolation(err, "posts_title_key") {
		return ErrTitleTaken
	}
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post by ID
func (r *pgRepository) GetByID(ctx context.Context, postID int64) (*Post, error) {
	var p Post
	err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, postID), &p)
	if database.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// List returns one page of posts and the total count. page must be normalized.
func (r *pgRepository) List(ctx context.Context, page PageRequest) ([]Post, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM posts ORDER BY %s %s LIMIT $1 OFFSET $2`,
		postColumns, sortColumns[page.SortBy], strings.ToUpper(page.SortDir))

	rows, err := r.db.Query(ctx, q, page.PageSize, page.PageNo*page.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		var p Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}
	return out, total, nil
}

// Update rewrites the editable fields of p
func (r *pgRepository) Update(ctx context.Context, p *Post) error {
	const q = `
		UPDATE posts
		SET title = $1, description = $2, content = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING author, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q, p.Title, p.Description, p.Content, p.ID).
		Scan(&p.Author, &p.CreatedAt, &p.UpdatedAt)
	if database.IsNotFound(err) {
		return ErrPostNotFound
	}
	if database.IsUniqueViolation(err, "posts_title_key") {
		return ErrTitleTaken
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post together with its comments
func (r *pgRepository) Delete(ctx context.Context, postID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}
