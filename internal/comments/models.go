package comments

import "time"

// Comment belongs to exactly one post
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentRequest is the payload for create and update.
// Name and Email identify the commenter.
type CommentRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Body  string `json:"body" binding:"required,notblank,max=5000"`
}

// Event is published when comments change
type Event struct {
	MessageID string    `json:"message_id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	CommentID int64     `json:"comment_id"`
	PostID    int64     `json:"post_id,omitempty"`
	Username  string    `json:"username,omitempty"`
}

// EventType names a comment lifecycle change
type EventType string

const (
	EventCreated EventType = "comment.created"
	EventDeleted EventType = "comment.deleted"
	EventLiked   EventType = "comment.liked"
)
