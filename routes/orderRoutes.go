package routes

import (
	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, auth gin.HandlerFunc, orders *controllers.OrderController) {
	order := server.Group("/order", auth)
	{
		order.POST("/place-order", middlewares.RequireBuyer(), orders.PlaceOrder)
		order.GET("/get-orders", middlewares.RequireSeller(), orders.GetOrders)
		order.GET("/get-orders-buyer", middlewares.RequireBuyer(), orders.GetOrdersBuyer)
		order.POST("/update-order-shipped/:id", middlewares.RequireSeller(), orders.UpdateOrderShipped)
		order.POST("/update-order-delivered/:id", middlewares.RequireBuyer(), orders.UpdateOrderDelivered)
	}
}
