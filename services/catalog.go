package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/shopspring/decimal"
)

// Search returns at most this many matches.
const searchLimit = 5

type ProductInput struct {
	Name          string `validate:"required"`
	Price         decimal.Decimal
	Description   string             `validate:"required"`
	Type          models.ProductType `validate:"required"`
	Specification []models.Specification
	Status        models.StockStatus
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string
	Price         *decimal.Decimal
	Description   *string
	Type          *models.ProductType
	Specification []models.Specification
	Status        *models.StockStatus
}

type Catalog struct {
	products ProductStore
	images   *Images
}

func NewCatalog(products ProductStore, images *Images) *Catalog {
	return &Catalog{products: products, images: images}
}

func checkSpecification(spec []models.Specification) error {
	for i, s := range spec {
		if strings.TrimSpace(s.Name) == "" {
			return invalid("specification %d has no name", i)
		}
	}
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

func (c *Catalog) AddProduct(ctx context.Context, sellerID uint, in ProductInput, upload *ImageUpload) (*models.Product, *Attachment, error) {
	if sellerID == 0 {
		return nil, nil, invalid("seller is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, nil, err
	}
	if !in.Type.Valid() {
		return nil, nil, invalid("unknown product type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = models.InStock
	}
	if !in.Status.Valid() {
		return nil, nil, invalid("unknown stock status %q", in.Status)
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, nil, err
	}
	if err := checkSpecification(in.Specification); err != nil {
		return nil, nil, err
	}
	if in.Specification == nil {
		in.Specification = []models.Specification{}
	}

	product := &models.Product{
		SellerID:      sellerID,
		Name:          in.Name,
		Price:         in.Price,
		Description:   in.Description,
		Type:          in.Type,
		Specification: in.Specification,
		Status:        in.Status,
	}

	var attachment *Attachment
	if upload != nil {
		att, err := c.images.AttachImage(ctx, sellerID, *upload)
		if err != nil {
			return nil, nil, err
		}
		attachment = att
		product.ImageID = &att.ImageID
	}

	if err := c.products.CreateProduct(ctx, product); err != nil {
		if attachment != nil && !attachment.Reused {
			c.images.Release(ctx, attachment.ImageID)
		}
		return nil, nil, err
	}
	return product, attachment, nil
}

func (c *Catalog) ownedProduct(ctx context.Context, sellerID, productID uint) (*models.Product, error) {
	product, err := c.products.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product %d belongs to another seller", models.ErrForbidden, productID)
	}
	return product, nil
}

func applyPatch(product *models.Product, patch ProductPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return invalid("product name must not be empty")
		}
		product.Name = name
	}
	if patch.Price != nil {
		if err := checkPrice(*patch.Price); err != nil {
			return err
		}
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return invalid("unknown product type %q", *patch.Type)
		}
		product.Type = *patch.Type
	}
	if patch.Specification != nil {
		if err := checkSpecification(patch.Specification); err != nil {
			return err
		}
		product.Specification = patch.Specification
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return invalid("unknown stock status %q", *patch.Status)
		}
		product.Status = *patch.Status
	}
	return nil
}

// UpdateProduct applies patch to a product owned by sellerID. A new image
// replaces the current one; the old image is released only after the
// product points at the new one.
func (c *Catalog) UpdateProduct(ctx context.Context, sellerID, productID uint, patch ProductPatch, upload *ImageUpload) (*models.Product, *Attachment, error) {
	product, err := c.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, nil, err
	}
	if err := applyPatch(product, patch); err != nil {
		return nil, nil, err
	}

	previousImageID := product.ImageID
	var attachment *Attachment
	if upload != nil {
		att, err := c.images.AttachImage(ctx, sellerID, *upload)
		if err != nil {
			return nil, nil, err
		}
		attachment = att
		product.ImageID = &att.ImageID
	}

	if err := c.products.SaveProduct(ctx, product); err != nil {
		if attachment != nil && !attachment.Reused {
			log.Printf("Product %d not saved, releasing new image %d: %v", productID, attachment.ImageID, err)
			c.images.Release(ctx, attachment.ImageID)
		}
		return nil, nil, err
	}

	if attachment != nil && previousImageID != nil && *previousImageID != attachment.ImageID {
		c.images.Release(ctx, *previousImageID)
	}
	return product, attachment, nil
}

// DeleteProduct removes the product and then its image. Image cleanup is
// best-effort.
func (c *Catalog) DeleteProduct(ctx context.Context, sellerID, productID uint) error {
	product, err := c.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}
	if err := c.products.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	if product.ImageID != nil {
		c.images.Release(ctx, *product.ImageID)
	}
	log.Printf("Product %d deleted by seller %d", productID, sellerID)
	return nil
}

func (c *Catalog) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	return c.products.ProductDetail(ctx, productID)
}

func (c *Catalog) ListByType(ctx context.Context, productType models.ProductType) ([]models.Product, error) {
	if !productType.Valid() {
		return nil, invalid("unknown product type %q", productType)
	}
	return c.products.ListProducts(ctx, models.ProductFilter{Type: productType})
}

func (c *Catalog) ListBySeller(ctx context.Context, sellerID uint) ([]models.Product, error) {
	return c.products.ListProducts(ctx, models.ProductFilter{SellerID: sellerID})
}

func (c *Catalog) ListCatalog(ctx context.Context, limit int) ([]models.Product, error) {
	return c.products.ListProducts(ctx, models.ProductFilter{Limit: limit})
}

// Search matches product names case-insensitively.
func (c *Catalog) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}
	return c.products.ListProducts(ctx, models.ProductFilter{Name: query, Limit: searchLimit})
}
