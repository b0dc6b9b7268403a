package posts

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the post endpoints on the /api/v1 group
func RegisterRoutes(v1 *gin.RouterGroup, svc Service, auth gin.HandlerFunc) {
	h := NewHandler(svc)

	postsGroup := v1.Group("/posts")
	{
		postsGroup.GET("", h.GetAllPosts)
		postsGroup.GET("/:postId", h.GetPost)

		postsGroup.POST("", auth, h.CreatePost)
		postsGroup.PUT("/:postId", auth, h.UpdatePost)
		postsGroup.DELETE("/:postId", auth, h.DeletePost)
	}
}
