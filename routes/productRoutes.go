package routes

import (
	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, auth gin.HandlerFunc, products *controllers.ProductController) {
	server.GET("/product/search", products.Search)

	product := server.Group("/product", auth)
	{
		product.GET("/category/:type", products.ListByType)
		product.GET("/image/:id", products.ImageStatus)
		product.GET("/:id", products.GetProduct)

		seller := product.Group("", middlewares.RequireSeller())
		seller.POST("/add-product", products.AddProduct)
		seller.POST("/update-product", products.UpdateProduct)
		seller.DELETE("/delete-product/:id", products.DeleteProduct)
	}
}
