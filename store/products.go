package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kariqs/farmkart-api/models"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
	return classify(err, "create product")
}

func (s *Store) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, classify(err, fmt.Sprintf("product %d", id))
	}
	return &product, nil
}

// ProductDetail loads a product together with its seller and image.
func (s *Store) ProductDetail(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Seller").
		Preload("Image").
		First(&product, id).Error
	if err != nil {
		return nil, classify(err, fmt.Sprintf("product %d", id))
	}
	return &product, nil
}

func (s *Store) SaveProduct(ctx context.Context, product *models.Product) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
	return classify(err, fmt.Sprintf("save product %d", product.ID))
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return classify(result.Error, fmt.Sprintf("delete product %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Preload("Image")
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	products := []models.Product{}
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, classify(err, "list products")
	}
	return products, nil
}

// CountImageReferences reports how many products point at the image.
func (s *Store) CountImageReferences(ctx context.Context, imageID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("image_id = ?", imageID).
		Count(&count).Error
	return count, classify(err, fmt.Sprintf("count references to image %d", imageID))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
