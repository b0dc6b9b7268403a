package posts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"blog/internal/response"
	"blog/internal/security"

	"github.com/gin-gonic/gin"
)

const msgDeleted = "Post entity deleted successfully."

// Handler handles HTTP requests for posts
type Handler struct {
	svc Service
}

// NewHandler creates a new posts handler
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// CreatePost handles POST /api/v1/posts
func (h *Handler) CreatePost(c *gin.Context) {
	username, ok := security.Username(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	var req PostRequest
	if !response.BindJSON(c, &req) {
		return
	}

	post, err := h.svc.Create(c.Request.Context(), username, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetPost handles GET /api/v1/posts/:postId
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.svc.Get(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetAllPosts handles GET /api/v1/posts?page_no=0&page_size=10&sort_by=id&sort_dir=asc
func (h *Handler) GetAllPosts(c *gin.Context) {
	pageNo, _ := strconv.Atoi(c.DefaultQuery("page_no", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))

	page := PageRequest{
		PageNo:   pageNo,
		PageSize: pageSize,
		SortBy:   c.DefaultQuery("sort_by", DefaultSortBy),
		SortDir:  c.DefaultQuery("sort_dir", DefaultSortDir),
	}

	result, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdatePost handles PUT /api/v1/posts/:postId
func (h *Handler) UpdatePost(c *gin.Context) {
	username, ok := security.Username(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req PostRequest
	if !response.BindJSON(c, &req) {
		return
	}

	post, err := h.svc.Update(c.Request.Context(), username, postID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/v1/posts/:postId
func (h *Handler) DeletePost(c *gin.Context) {
	username, ok := security.Username(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), username, postID); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgDeleted)
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "You are not authorized to modify this post")
	case errors.Is(err, ErrTitleTaken):
		response.Error(c, http.StatusConflict, "Post title already exists")
	default:
		slog.Error("Post request failed",
			"path", c.FullPath(),
			"error", err,
			"request_id", c.GetString("request_id"))
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
