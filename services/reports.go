package services

import (
	"context"
	"sort"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultPopularLimit = 10
	// Fewer ranked products than this and the popular listing falls back
	// to the plain catalog.
	popularThreshold = 6
)

// Reports rolls orders up per buyer, per seller and per product. Amounts
// use each product's current price; orders keep no price of their own.
type Reports struct {
	orders   OrderStore
	products ProductStore
}

func NewReports(orders OrderStore, products ProductStore) *Reports {
	return &Reports{orders: orders, products: products}
}

func detailOf(line models.OrderLine) models.OrderDetail {
	return models.OrderDetail{
		OrderID:     line.OrderID,
		ProductName: line.ProductName,
		Price:       line.Price,
		Quantity:    line.Quantity,
		Status:      line.Status,
		CreatedAt:   line.CreatedAt,
	}
}

func sortDetails(details []models.OrderDetail) {
	sort.Slice(details, func(i, j int) bool {
		if !details[i].CreatedAt.Equal(details[j].CreatedAt) {
			return details[i].CreatedAt.Before(details[j].CreatedAt)
		}
		return details[i].OrderID < details[j].OrderID
	})
}

// SellerOrderSummary groups the seller's orders by buyer, sorted by buyer name.
func (r *Reports) SellerOrderSummary(ctx context.Context, sellerID uint) ([]models.BuyerGroup, error) {
	if sellerID == 0 {
		return nil, invalid("seller is required")
	}
	lines, err := r.orders.OrderLines(ctx, models.OrderLineFilter{SellerID: sellerID})
	if err != nil {
		return nil, err
	}
	return groupByBuyer(lines), nil
}

func groupByBuyer(lines []models.OrderLine) []models.BuyerGroup {
	groups := []models.BuyerGroup{}
	index := map[uint]int{}
	for _, line := range lines {
		i, ok := index[line.BuyerID]
		if !ok {
			groups = append(groups, models.BuyerGroup{
				BuyerID:    line.BuyerID,
				BuyerName:  line.BuyerName,
				TotalSales: decimal.Zero,
			})
			i = len(groups) - 1
			index[line.BuyerID] = i
		}
		g := &groups[i]
		g.TotalOrders++
		g.TotalQuantity += line.Quantity
		g.TotalSales = g.TotalSales.Add(line.Amount())
		g.Orders = append(g.Orders, detailOf(line))
	}

	for i := range groups {
		sortDetails(groups[i].Orders)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].BuyerName != groups[j].BuyerName {
			return groups[i].BuyerName < groups[j].BuyerName
		}
		return groups[i].BuyerID < groups[j].BuyerID
	})
	return groups
}

// BuyerOrderSummary groups the buyer's orders by seller, sorted by seller name.
func (r *Reports) BuyerOrderSummary(ctx context.Context, buyerID uint) ([]models.SellerGroup, error) {
	if buyerID == 0 {
		return nil, invalid("buyer is required")
	}
	lines, err := r.orders.OrderLines(ctx, models.OrderLineFilter{BuyerID: buyerID})
	if err != nil {
		return nil, err
	}
	return groupBySeller(lines), nil
}

func groupBySeller(lines []models.OrderLine) []models.SellerGroup {
	groups := []models.SellerGroup{}
	index := map[uint]int{}
	for _, line := range lines {
		i, ok := index[line.SellerID]
		if !ok {
			groups = append(groups, models.SellerGroup{
				SellerID:   line.SellerID,
				SellerName: line.SellerName,
				TotalSpent: decimal.Zero,
			})
			i = len(groups) - 1
			index[line.SellerID] = i
		}
		g := &groups[i]
		g.TotalOrders++
		g.TotalQuantity += line.Quantity
		g.TotalSpent = g.TotalSpent.Add(line.Amount())
		g.Orders = append(g.Orders, detailOf(line))
	}

	for i := range groups {
		sortDetails(groups[i].Orders)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].SellerName != groups[j].SellerName {
			return groups[i].SellerName < groups[j].SellerName
		}
		return groups[i].SellerID < groups[j].SellerID
	})
	return groups
}

// PopularProducts ranks products by delivered quantity. With fewer than six
// ranked products it returns up to limit catalog products instead, unranked.
func (r *Reports) PopularProducts(ctx context.Context, limit int) (*models.PopularListing, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	lines, err := r.orders.OrderLines(ctx, models.OrderLineFilter{Status: models.OrderDelivered})
	if err != nil {
		return nil, err
	}

	ranked := rankProducts(lines, limit)
	if len(ranked) >= popularThreshold {
		return &models.PopularListing{Ranked: true, Products: ranked}, nil
	}

	products, err := r.products.ListProducts(ctx, models.ProductFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	listing := &models.PopularListing{Products: make([]models.PopularProduct, 0, len(products))}
	for i := range products {
		p := &products[i]
		listing.Products = append(listing.Products, models.PopularProduct{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Price:         p.Price,
			Type:          p.Type,
			Specification: p.Specification,
			ImageURL:      p.ImageURL(),
		})
	}
	return listing, nil
}

func rankProducts(lines []models.OrderLine, limit int) []models.PopularProduct {
	ranked := []models.PopularProduct{}
	index := map[uint]int{}
	for _, line := range lines {
		i, ok := index[line.ProductID]
		if !ok {
			ranked = append(ranked, models.PopularProduct{
				ProductID:     line.ProductID,
				ProductName:   line.ProductName,
				Price:         line.Price,
				Type:          line.ProductType,
				Specification: line.ProductSpecification,
				ImageURL:      line.ImageURL,
			})
			i = len(ranked) - 1
			index[line.ProductID] = i
		}
		ranked[i].TotalOrdered += line.Quantity
		ranked[i].OrderCount++
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalOrdered != ranked[j].TotalOrdered {
			return ranked[i].TotalOrdered > ranked[j].TotalOrdered
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
