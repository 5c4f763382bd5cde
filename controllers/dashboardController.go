package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/services"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	ledger  *services.Ledger
	reports *services.Reports
}

func NewDashboardController(ledger *services.Ledger, reports *services.Reports) *DashboardController {
	return &DashboardController{ledger: ledger, reports: reports}
}

// Dashboard shows buyers what sells and sellers what they have sold.
func (d *DashboardController) Dashboard(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}

	if principal.Role == models.RoleSeller {
		orders, err := d.ledger.SellerOrders(ctx.Request.Context(), principal.ID)
		if err != nil {
			handleServiceError(ctx, err, "Failed to load dashboard")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"role": principal.Role, "orders": orders})
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(services.DefaultPopularLimit)))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid limit")
		return
	}
	popular, err := d.reports.PopularProducts(ctx.Request.Context(), limit)
	if err != nil {
		handleServiceError(ctx, err, "Failed to load dashboard")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"role": principal.Role, "popular": popular})
}
