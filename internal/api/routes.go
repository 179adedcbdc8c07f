package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, svc *Service) {
	r.Use(requestID())
	r.GET("/", svc.index)

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/background", svc.backgroundHandler)
		api.POST("/compose", svc.composeHandler)
		api.GET("/qr", qrHandler)
	}
}
