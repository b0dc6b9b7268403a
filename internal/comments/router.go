package comments

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the comment endpoints on the /api/v1 group.
// Reads are public; writes go through auth.
func RegisterRoutes(v1 *gin.RouterGroup, svc Service, auth gin.HandlerFunc) {
	h := NewHandler(svc)

	v1.GET("/posts/:postId/comments", h.List)
	v1.GET("/posts/:postId/comments/:commentId", h.Get)

	v1.POST("/posts/:postId/comments", auth, h.Create)
	v1.PUT("/posts/:postId/comments/:commentId", auth, h.Update)
	v1.DELETE("/posts/:postId/comments/:commentId", auth, h.Delete)
	v1.PATCH("/:id/like", auth, h.Like)
}
