package posts

import (
	"math"
	"time"
)

// Post is a blog article owned by its author's username
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostRequest is the body of create and update
type PostRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"required,min=10,max=1000"`
	Content     string `json:"content" binding:"required"`
}

// PageRequest selects one page of posts
type PageRequest struct {
	PageNo   int
	PageSize int
	SortBy   string
	SortDir  string
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "id"
	DefaultSortDir  = "asc"

	// MaxPageNo keeps PageNo*PageSize inside a 32-bit offset
	MaxPageNo = math.MaxInt32 / MaxPageSize
)

// sortColumns whitelists the columns a page may be ordered by
var sortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// Normalize clamps out-of-range values to the defaults
func (p PageRequest) Normalize() PageRequest {
	if p.PageNo < 0 {
		p.PageNo = 0
	}
	if p.PageNo > MaxPageNo {
		p.PageNo = MaxPageNo
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = DefaultSortBy
	}
	if p.SortDir != "desc" {
		p.SortDir = DefaultSortDir
	}
	return p
}

// PostPage is one page of posts plus paging metadata
type PostPage struct {
	Content       []Post `json:"content"`
	PageNo        int    `json:"page_no"`
	PageSize      int    `json:"page_size"`
	TotalElements int64  `json:"total_elements"`
	TotalPages    int    `json:"total_pages"`
	Last          bool   `json:"last"`
}

func newPostPage(posts []Post, total int64, p PageRequest) *PostPage {
	totalPages := int(total) / p.PageSize
	if int(total)%p.PageSize != 0 {
		totalPages++
	}
	return &PostPage{
		Content:       posts,
		PageNo:        p.PageNo,
		PageSize:      p.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          p.PageNo >= totalPages-1,
	}
}
