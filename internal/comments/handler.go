package comments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"blog/internal/response"
	"blog/internal/security"

	"github.com/gin-gonic/gin"
)

const (
	msgDeleted = "Comment deleted successfully."
	msgLiked   = "You liked this comment."
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// POST /api/v1/posts/:postId/comments
func (h *Handler) Create(c *gin.Context) {
	username, ok := security.Username(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req CommentRequest
	if !response.BindJSON(c, &req) {
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), username, postID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GET /api/v1/posts/:postId/comments
func (h *Handler) List(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	list, err := h.svc.ListByPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/posts/:postId/comments/:commentId
func (h *Handler) Get(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), postID, commentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// PUT /api/v1/posts/:postId/comments/:commentId
func (h *Handler) Update(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if !response.BindJSON(c, &req) {
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), postID, commentID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /api/v1/posts/:postId/comments/:commentId
func (h *Handler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), postID, commentID); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgDeleted)
}

// PATCH /api/v1/:id/like
func (h *Handler) Like(c *gin.Context) {
	username, ok := security.Username(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Like(c.Request.Context(), username, commentID); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgLiked)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrCommentNotInPost):
		response.Error(c, http.StatusBadRequest, "Comment does not belong to post")
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "Invalid input")
	default:
		slog.Error("Comment request failed",
			"path", c.FullPath(),
			"error", err,
			"request_id", c.GetString("request_id"))
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
