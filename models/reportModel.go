package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderLine is one order joined with its product, buyer and seller.
type OrderLine struct {
	OrderID              uint                               `json:"orderId"`
	BuyerID              uint                               `json:"buyerId"`
	BuyerName            string                             `json:"buyerName"`
	SellerID             uint                               `json:"sellerId"`
	SellerName           string                             `json:"sellerName"`
	ProductID            uint                               `json:"productId"`
	ProductName          string                             `json:"productName"`
	ProductType          ProductType                        `json:"productType"`
	ProductSpecification datatypes.JSONSlice[Specification] `json:"productSpecification"`
	Price                decimal.Decimal                    `json:"price"`
	ImageURL             *string                            `json:"imageUrl"`
	Quantity             int                                `json:"quantity"`
	Status               OrderStatus                        `json:"status"`
	CreatedAt            time.Time                          `json:"createdAt"`
}

// Amount is the line total at the product's current price.
func (l OrderLine) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type OrderDetail struct {
	OrderID     uint            `json:"orderId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BuyerGroup struct {
	BuyerID       uint            `json:"buyerId"`
	BuyerName     string          `json:"buyerName"`
	TotalOrders   int             `json:"totalOrders"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	Orders        []OrderDetail   `json:"orders"`
}

type SellerGroup struct {
	SellerID      uint            `json:"sellerId"`
	SellerName    string          `json:"sellerName"`
	TotalOrders   int             `json:"totalOrders"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	Orders        []OrderDetail   `json:"orders"`
}

type PopularProduct struct {
	ProductID     uint                               `json:"productId"`
	ProductName   string                             `json:"productName"`
	Price         decimal.Decimal                    `json:"price"`
	Type          ProductType                        `json:"type"`
	Specification datatypes.JSONSlice[Specification] `json:"specification"`
	ImageURL      *string                            `json:"imageUrl"`
	TotalOrdered  int                                `json:"totalOrdered"`
	OrderCount    int                                `json:"orderCount"`
}

// PopularListing is ranked when built from delivered orders and unranked
// when it fell back to a plain catalog listing.
type PopularListing struct {
	Ranked   bool             `json:"ranked"`
	Products []PopularProduct `json:"products"`
}
