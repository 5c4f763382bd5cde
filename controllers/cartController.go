package controllers

import (
	"net/http"

	"github.com/Kariqs/farmkart-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.Carts
}

func NewCartController(carts *services.Carts) *CartController {
	return &CartController{carts: carts}
}

type cartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func (c *CartController) CreateCartItem(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body cartItemRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	item, err := c.carts.AddItem(ctx.Request.Context(), principal.ID, body.ProductID, body.Quantity)
	if err != nil {
		handleServiceError(ctx, err, "Unable to add item to cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart updated", "item": item})
}

func (c *CartController) GetCart(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	items, err := c.carts.Items(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items})
}

func (c *CartController) DeleteCartItem(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := parseID(ctx.Param("productId"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := c.carts.RemoveItem(ctx.Request.Context(), principal.ID, productID); err != nil {
		handleServiceError(ctx, err, "Unable to remove cart item")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (c *CartController) Checkout(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	orders, err := c.carts.Checkout(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to place order")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Order placed successfully", "orders": orders})
}
