package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/farmkart-api/models"
	"gorm.io/gorm"
)

// AddCartItem adds quantity to the buyer's line for the product, creating
// the line when there is none yet.
func (s *Store) AddCartItem(ctx context.Context, buyerID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("buyer_id = ? AND product_id = ?", buyerID, productID).First(&item).Error
		if err == nil {
			item.Quantity += quantity
			return tx.Save(&item).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item = models.CartItem{BuyerID: buyerID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, classify(err, "add cart item")
	}
	return &item, nil
}

func (s *Store) CartItems(ctx context.Context, buyerID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := s.db.WithContext(ctx).
		Preload("Product.Image").
		Where("buyer_id = ?", buyerID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, classify(err, "cart items")
	}
	return items, nil
}

func (s *Store) RemoveCartItem(ctx context.Context, buyerID, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return classify(result.Error, "remove cart item")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d is not in the cart", models.ErrNotFound, productID)
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, buyerID uint) error {
	err := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Delete(&models.CartItem{}).Error
	return classify(err, "clear cart")
}
