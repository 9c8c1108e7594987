package server

import (
	oh "chaton2api-go/internal/handlers/openai"
	"github.com/gin-gonic/gin"
)

// RegisterOpenAIRoutes mounts OpenAI-compatible endpoints and the image file route.
func RegisterOpenAIRoutes(root *gin.RouterGroup, oa *oh.Handler) {
	v1 := root.Group("/v1")
	v1.GET("/models", oa.ListModels)
	v1.POST("/chat/completions", oa.ChatCompletions)
	v1.POST("/images/generations", oa.ImagesGenerations)

	root.GET("/images/:name", oa.ServeImage)
	root.HEAD("/images/:name", oa.ServeImage)
}
