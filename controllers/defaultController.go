package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the FarmKart API. Buyers and sellers of produce, flowers and farm tools meet here.

The following are the endpoints for this API:

USER
- POST "/user/register" - Create a buyer or seller account
- POST "/user/login" - Sign in (sets the token cookie)
- GET "/user/logout" - Sign out
- GET "/user/me" - Current account
- GET "/user/dashboard" - Popular products (buyer) or received orders (seller)
- GET "/user/my-product" - Seller's own listings

PRODUCT
- GET "/product/search?q=" - Search products by name (no login needed)
- GET "/product/category/:type" - List products of a type
- GET "/product/:id" - Get product by ID
- GET "/product/image/:id" - Image upload status (?wait=true to block briefly)
- POST "/product/add-product" - Add a product (multipart, optional image)
- POST "/product/update-product" - Update the sent fields of a product
- DELETE "/product/delete-product/:id" - Delete a product

ORDER
- POST "/order/place-order" - Place one order per line item
- GET "/order/get-orders" - Seller's orders grouped by buyer
- GET "/order/get-orders-buyer" - Buyer's orders grouped by seller
- POST "/order/update-order-shipped/:id" - Seller marks an order shipped
- POST "/order/update-order-delivered/:id" - Buyer marks an order delivered

CART
- POST "/cart" - Add a product to the cart
- GET "/cart" - View the cart
- DELETE "/cart/:productId" - Remove a product from the cart
- POST "/cart/checkout" - Place orders for the whole cart`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the database answers.
func Ready(db Pinger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			log.Println("Readiness check failed:", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
