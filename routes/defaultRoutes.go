package routes

import (
	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, db controllers.Pinger) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.Health)
	server.GET("/ready", controllers.Ready(db))
}
