package admin

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes mounts /auth under the admin group. auth guards the
// session endpoints.
func RegisterAuthRoutes(r *gin.RouterGroup, h *AuthHandler, auth gin.HandlerFunc) {
	group := r.Group("/auth")
	group.POST("/login", h.Login)
	group.POST("/logout", auth, h.Logout)
	group.GET("/me", auth, h.GetMe)
}
