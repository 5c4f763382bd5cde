// Package services holds the marketplace rules: accounts, the product
// catalog, image de-duplication, the order ledger and its reports.
package services

import (
	"context"

	"github.com/Kariqs/farmkart-api/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	FindProduct(ctx context.Context, id uint) (*models.Product, error)
	ProductDetail(ctx context.Context, id uint) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
}

type ImageStore interface {
	CreateImage(ctx context.Context, image *models.Image) error
	FindImage(ctx context.Context, id uint) (*models.Image, error)
	FindImageByHash(ctx context.Context, userID uint, hash string) (*models.Image, error)
	SetImageLocation(ctx context.Context, id uint, url, publicID string) (bool, error)
	DeleteImage(ctx context.Context, id uint) error
	CountImageReferences(ctx context.Context, imageID uint) (int64, error)
}

type OrderStore interface {
	CreateOrders(ctx context.Context, orders []models.Order) error
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) error
	OrderLines(ctx context.Context, filter models.OrderLineFilter) ([]models.OrderLine, error)
}

type CartStore interface {
	AddCartItem(ctx context.Context, buyerID, productID uint, quantity int) (*models.CartItem, error)
	CartItems(ctx context.Context, buyerID uint) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, buyerID, productID uint) error
	ClearCart(ctx context.Context, buyerID uint) error
}
