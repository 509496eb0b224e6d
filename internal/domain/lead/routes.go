package lead

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers public lead routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/quotes", handler.SubmitQuote)
}

// RegisterAdminRoutes registers admin lead routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	quotes := r.Group("/quotes")
	{
		quotes.GET("", handler.ListQuotes)
		quotes.GET("/stats", handler.GetStats)
		quotes.GET("/:id", handler.GetQuote)
		quotes.PATCH("/:id/status", handler.UpdateStatus)
	}
}
