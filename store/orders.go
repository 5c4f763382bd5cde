package store

import (
	"context"
	"fmt"

	"github.com/Kariqs/farmkart-api/models"
	"gorm.io/gorm"
)

// CreateOrders inserts every order or none of them.
func (s *Store) CreateOrders(ctx context.Context, orders []models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&orders).Error
	})
	return classify(err, "create orders")
}

func (s *Store) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, classify(err, fmt.Sprintf("order %d", id))
	}
	return &order, nil
}

// UpdateOrderStatus moves an order from one status to another. The write only
// applies while the order is still in from, so a concurrent transition that
// got there first makes this one fail.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) error {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return classify(result.Error, fmt.Sprintf("update order %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %d is no longer %s", models.ErrInvalidTransition, id, from)
	}
	return nil
}

// OrderLines joins orders with their product, image, buyer and seller.
// Orders whose product or users are gone drop out of the result.
func (s *Store) OrderLines(ctx context.Context, filter models.OrderLineFilter) ([]models.OrderLine, error) {
	query := s.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id AS order_id,
			orders.buyer_id, buyers.name AS buyer_name,
			orders.seller_id, sellers.name AS seller_name,
			orders.product_id, products.name AS product_name, products.type AS product_type,
			products.specification AS product_specification, products.price,
			images.url AS image_url,
			orders.quantity, orders.status, orders.created_at`).
		Joins("JOIN products ON products.id = orders.product_id").
		Joins("JOIN users buyers ON buyers.id = orders.buyer_id").
		Joins("JOIN users sellers ON sellers.id = orders.seller_id").
		Joins("LEFT JOIN images ON images.id = products.image_id")

	if filter.BuyerID != 0 {
		query = query.Where("orders.buyer_id = ?", filter.BuyerID)
	}
	if filter.SellerID != 0 {
		query = query.Where("orders.seller_id = ?", filter.SellerID)
	}
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}

	lines := []models.OrderLine{}
	if err := query.Order("orders.created_at DESC, orders.id DESC").Scan(&lines).Error; err != nil {
		return nil, classify(err, "order lines")
	}
	return lines, nil
}
