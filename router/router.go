package router

import (
	"Go_Mall/internal/handler"
	"Go_Mall/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/products/import", handler.ImportProducts)

		uploads := api.Group("/uploads")
		{
			uploads.GET("/:token", handler.GetUploadStatus)
			uploads.POST("/initiate", handler.InitiateUpload)
			uploads.POST("/chunk", handler.UploadChunk)
			uploads.POST("/complete", handler.CompleteUpload)
			uploads.POST("/attach", handler.AttachImage)
		}
	}
	return r
}
