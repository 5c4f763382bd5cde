package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/farmkart-api/models"
)

// LineItem is one cart line of a placed order. SellerID is optional; when
// given it must match the product's seller.
type LineItem struct {
	ProductID uint `json:"productId" form:"productId"`
	SellerID  uint `json:"sellerId" form:"sellerId"`
	Quantity  int  `json:"quantity" form:"quantity"`
}

// Notifier hears about order events. Implementations must not block.
type Notifier interface {
	OrderPlaced(ctx context.Context, seller, buyer *models.User, product *models.Product, order *models.Order)
	OrderShipped(ctx context.Context, buyer *models.User, product *models.Product, order *models.Order)
}

type nopNotifier struct{}

func (nopNotifier) OrderPlaced(context.Context, *models.User, *models.User, *models.Product, *models.Order) {
}

func (nopNotifier) OrderShipped(context.Context, *models.User, *models.Product, *models.Order) {}

type Ledger struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
	notifier Notifier
}

func NewLedger(orders OrderStore, products ProductStore, users UserStore, notifier Notifier) *Ledger {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Ledger{orders: orders, products: products, users: users, notifier: notifier}
}

// PlaceOrder creates one pending order per line item. Every line is checked
// before anything is written, and the orders are stored together.
func (l *Ledger) PlaceOrder(ctx context.Context, buyerID uint, lines []LineItem) ([]models.Order, error) {
	if buyerID == 0 {
		return nil, invalid("buyer is required")
	}
	if len(lines) == 0 {
		return nil, invalid("at least one line item is required")
	}

	orders := make([]models.Order, 0, len(lines))
	products := make([]*models.Product, 0, len(lines))
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, invalid("line %d: quantity must be at least 1", i)
		}
		if line.ProductID == 0 {
			return nil, invalid("line %d: product is required", i)
		}
		product, err := l.products.FindProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if line.SellerID != 0 && line.SellerID != product.SellerID {
			return nil, invalid("line %d: product %d is not sold by seller %d", i, product.ID, line.SellerID)
		}
		if product.Status == models.OutOfStock {
			return nil, invalid("line %d: %s is out of stock", i, product.Name)
		}

		orders = append(orders, models.Order{
			BuyerID:   buyerID,
			SellerID:  product.SellerID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Status:    models.OrderPending,
		})
		products = append(products, product)
	}

	if err := l.orders.CreateOrders(ctx, orders); err != nil {
		return nil, err
	}

	l.notifyPlaced(ctx, buyerID, orders, products)
	return orders, nil
}

func (l *Ledger) notifyPlaced(ctx context.Context, buyerID uint, orders []models.Order, products []*models.Product) {
	if _, ok := l.notifier.(nopNotifier); ok {
		return
	}
	buyer, err := l.users.FindUser(ctx, buyerID)
	if err != nil {
		log.Printf("Skipping order notifications, buyer %d not loaded: %v", buyerID, err)
		return
	}
	sellers := map[uint]*models.User{}
	for i := range orders {
		sellerID := orders[i].SellerID
		seller, ok := sellers[sellerID]
		if !ok {
			seller, err = l.users.FindUser(ctx, sellerID)
			if err != nil {
				log.Printf("Skipping notification for order %d, seller %d not loaded: %v", orders[i].ID, sellerID, err)
				continue
			}
			sellers[sellerID] = seller
		}
		l.notifier.OrderPlaced(ctx, seller, buyer, products[i], &orders[i])
	}
}

// advance loads the order, checks that actor is the party allowed to make
// the move and applies it only if the order is still where it was read.
func (l *Ledger) advance(ctx context.Context, orderID, actorID uint, next models.OrderStatus) (*models.Order, error) {
	order, err := l.orders.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	allowed := order.SellerID
	if next == models.OrderDelivered {
		allowed = order.BuyerID
	}
	if actorID == 0 || actorID != allowed {
		return nil, fmt.Errorf("%w: user %d may not mark order %d %s", models.ErrForbidden, actorID, orderID, next)
	}

	status, err := order.Status.Transition(next)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", orderID, err)
	}
	if err := l.orders.UpdateOrderStatus(ctx, orderID, order.Status, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// AdvanceToShipped lets the order's seller move it from pending to shipped.
func (l *Ledger) AdvanceToShipped(ctx context.Context, orderID, actorID uint) (*models.Order, error) {
	order, err := l.advance(ctx, orderID, actorID, models.OrderShipped)
	if err != nil {
		return nil, err
	}
	l.notifyShipped(ctx, order)
	return order, nil
}

// AdvanceToDelivered lets the order's buyer move it from shipped to delivered.
func (l *Ledger) AdvanceToDelivered(ctx context.Context, orderID, actorID uint) (*models.Order, error) {
	return l.advance(ctx, orderID, actorID, models.OrderDelivered)
}

func (l *Ledger) notifyShipped(ctx context.Context, order *models.Order) {
	if _, ok := l.notifier.(nopNotifier); ok {
		return
	}
	buyer, err := l.users.FindUser(ctx, order.BuyerID)
	if err != nil {
		log.Printf("Skipping shipment notification for order %d: %v", order.ID, err)
		return
	}
	product, err := l.products.FindProduct(ctx, order.ProductID)
	if err != nil {
		log.Printf("Skipping shipment notification for order %d: %v", order.ID, err)
		return
	}
	l.notifier.OrderShipped(ctx, buyer, product, order)
}

// SellerOrders lists the seller's orders, newest first, with buyer and
// product details filled in.
func (l *Ledger) SellerOrders(ctx context.Context, sellerID uint) ([]models.OrderLine, error) {
	return l.orders.OrderLines(ctx, models.OrderLineFilter{SellerID: sellerID})
}
