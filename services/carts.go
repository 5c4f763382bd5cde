package services

import (
	"context"
	"log"

	"github.com/Kariqs/farmkart-api/models"
)

type Carts struct {
	carts    CartStore
	products ProductStore
	ledger   *Ledger
}

func NewCarts(carts CartStore, products ProductStore, ledger *Ledger) *Carts {
	return &Carts{carts: carts, products: products, ledger: ledger}
}

func (c *Carts) AddItem(ctx context.Context, buyerID, productID uint, quantity int) (*models.CartItem, error) {
	if buyerID == 0 {
		return nil, invalid("buyer is required")
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	if _, err := c.products.FindProduct(ctx, productID); err != nil {
		return nil, err
	}
	return c.carts.AddCartItem(ctx, buyerID, productID, quantity)
}

func (c *Carts) Items(ctx context.Context, buyerID uint) ([]models.CartItem, error) {
	return c.carts.CartItems(ctx, buyerID)
}

func (c *Carts) RemoveItem(ctx context.Context, buyerID, productID uint) error {
	return c.carts.RemoveCartItem(ctx, buyerID, productID)
}

// Checkout places one order per cart line and empties the cart.
func (c *Carts) Checkout(ctx context.Context, buyerID uint) ([]models.Order, error) {
	items, err := c.carts.CartItems(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("cart is empty")
	}

	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	orders, err := c.ledger.PlaceOrder(ctx, buyerID, lines)
	if err != nil {
		return nil, err
	}

	if err := c.carts.ClearCart(ctx, buyerID); err != nil {
		log.Printf("Orders placed but cart of buyer %d was not cleared: %v", buyerID, err)
	}
	return orders, nil
}
