package routes

import (
	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, auth gin.HandlerFunc, users *controllers.AuthController, products *controllers.ProductController, dashboard *controllers.DashboardController) {
	user := server.Group("/user")
	{
		user.POST("/register", users.Register)
		user.POST("/login", users.Login)
		user.GET("/logout", users.Logout)
		user.GET("/me", auth, users.Profile)
		user.GET("/dashboard", auth, dashboard.Dashboard)
		user.GET("/my-product", auth, middlewares.RequireSeller(), products.MyProducts)
	}
}
