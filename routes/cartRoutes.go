package routes

import (
	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, auth gin.HandlerFunc, carts *controllers.CartController) {
	cart := server.Group("/cart", auth, middlewares.RequireBuyer())
	{
		cart.POST("", carts.CreateCartItem)
		cart.GET("", carts.GetCart)
		cart.POST("/checkout", carts.Checkout)
		cart.DELETE("/:productId", carts.DeleteCartItem)
	}
}
