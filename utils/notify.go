package utils

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/Kariqs/farmkart-api/models"
)

// OrderMailer emails sellers about new orders and buyers about shipments.
// Mail goes out on its own goroutine and failures are only logged.
type OrderMailer struct {
	mailer *Mailer
	send   func(func())
}

func NewOrderMailer(mailer *Mailer) *OrderMailer {
	return &OrderMailer{mailer: mailer, send: func(fn func()) { go fn() }}
}

func orderRows(product *models.Product, order *models.Order) []EmailRow {
	return []EmailRow{
		{Label: "Order", Value: "#" + strconv.FormatUint(uint64(order.ID), 10)},
		{Label: "Product", Value: product.Name},
		{Label: "Quantity", Value: strconv.Itoa(order.Quantity)},
		{Label: "Price", Value: product.Price.StringFixed(2)},
		{Label: "Status", Value: string(order.Status)},
	}
}

func (n *OrderMailer) OrderPlaced(_ context.Context, seller, buyer *models.User, product *models.Product, order *models.Order) {
	data := EmailData{
		Name:    seller.Name,
		Message: fmt.Sprintf("%s placed a new order for %s.", buyer.Name, product.Name),
		Rows:    orderRows(product, order),
	}
	n.send(func() {
		if err := n.mailer.SendEmail(seller.Email, "New order received", "order_placed.html", data); err != nil {
			log.Printf("Error sending order %d notification to seller %d: %v", order.ID, seller.ID, err)
		}
	})
}

func (n *OrderMailer) OrderShipped(_ context.Context, buyer *models.User, product *models.Product, order *models.Order) {
	data := EmailData{
		Name:    buyer.Name,
		Message: fmt.Sprintf("Your order for %s is on its way.", product.Name),
		Rows:    orderRows(product, order),
	}
	n.send(func() {
		if err := n.mailer.SendEmail(buyer.Email, "Your order has shipped", "order_shipped.html", data); err != nil {
			log.Printf("Error sending order %d shipment notification to buyer %d: %v", order.ID, buyer.ID, err)
		}
	})
}
