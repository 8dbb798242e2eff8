package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/layout", s.layoutHandler)
		api.POST("/sheet", s.sheetHandler)
		api.GET("/qr", s.qrHandler)
	}
}
