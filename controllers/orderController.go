package controllers

import (
	"net/http"

	"github.com/Kariqs/farmkart-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	ledger  *services.Ledger
	reports *services.Reports
}

func NewOrderController(ledger *services.Ledger, reports *services.Reports) *OrderController {
	return &OrderController{ledger: ledger, reports: reports}
}

type placeOrderRequest struct {
	Items []services.LineItem `json:"items"`
}

func (o *OrderController) PlaceOrder(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body placeOrderRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	orders, err := o.ledger.PlaceOrder(ctx.Request.Context(), principal.ID, body.Items)
	if err != nil {
		handleServiceError(ctx, err, "Failed to place order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orders":  orders,
	})
}

// GetOrders is the seller's view: orders grouped by buyer.
func (o *OrderController) GetOrders(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	summary, err := o.reports.SellerOrderSummary(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": summary})
}

// GetOrdersBuyer is the buyer's view: orders grouped by seller.
func (o *OrderController) GetOrdersBuyer(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	summary, err := o.reports.BuyerOrderSummary(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": summary})
}

func (o *OrderController) UpdateOrderShipped(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	orderID, ok := parseID(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	order, err := o.ledger.AdvanceToShipped(ctx.Request.Context(), orderID, principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update order status")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order marked as shipped", "order": order})
}

func (o *OrderController) UpdateOrderDelivered(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	orderID, ok := parseID(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	order, err := o.ledger.AdvanceToDelivered(ctx.Request.Context(), orderID, principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update order status")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order marked as delivered", "order": order})
}
