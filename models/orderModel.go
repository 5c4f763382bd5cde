package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

// pending -> shipped -> delivered, nothing else.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderPending: OrderShipped,
	OrderShipped: OrderDelivered,
}

func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderShipped || s == OrderDelivered
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered
}

func (s OrderStatus) CanTransition(next OrderStatus) bool {
	to, ok := orderTransitions[s]
	return ok && to == next
}

// Transition returns next when the move from s is legal and an
// ErrInvalidTransition otherwise.
func (s OrderStatus) Transition(next OrderStatus) (OrderStatus, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	BuyerID   uint        `json:"buyerId" gorm:"index;not null"`
	SellerID  uint        `json:"sellerId" gorm:"index;not null"`
	ProductID uint        `json:"productId" gorm:"index;not null"`
	Quantity  int         `json:"quantity" gorm:"not null"`
	Status    OrderStatus `json:"status" gorm:"size:16;index;not null"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
