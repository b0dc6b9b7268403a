package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"blog/internal/response"

	"github.com/gin-gonic/gin"
)

const msgRegistered = "User registered successfully."

// Handler handles authentication-related HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new authentication handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Signup handles POST /api/v1/auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if !response.BindJSON(c, &req) {
		return
	}

	_, err := h.service.Signup(c.Request.Context(), req)
	switch {
	case err == nil:
		response.Message(c, http.StatusCreated, msgRegistered)
	case errors.Is(err, ErrUsernameExists):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Error:  "Username is already taken",
			Fields: map[string]string{"username": "already in use"},
		})
	case errors.Is(err, ErrEmailExists):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Error:  "Email is already registered",
			Fields: map[string]string{"email": "already in use"},
		})
	default:
		slog.Error("Signup failed", "username", req.Username, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to register user")
	}
}

// Signin handles POST /api/v1/auth/signin
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if !response.BindJSON(c, &req) {
		return
	}

	token, err := h.service.Signin(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, token)
	case errors.Is(err, ErrBadCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid username/email or password")
	default:
		slog.Error("Signin failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to sign in")
	}
}

// RegisterRoutes mounts /auth/signup and /auth/signin on the /api/v1 group
func RegisterRoutes(v1 *gin.RouterGroup, svc Service) {
	h := NewHandler(svc)

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
	}
}
