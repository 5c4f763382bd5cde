package store

import (
	"context"
	"fmt"

	"github.com/Kariqs/farmkart-api/models"
)

func (s *Store) CreateImage(ctx context.Context, image *models.Image) error {
	return classify(s.db.WithContext(ctx).Create(image).Error, "create image")
}

func (s *Store) FindImage(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, classify(err, fmt.Sprintf("image %d", id))
	}
	return &image, nil
}

func (s *Store) FindImageByHash(ctx context.Context, userID uint, hash string) (*models.Image, error) {
	var image models.Image
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND hash = ?", userID, hash).
		Order("id").
		First(&image).Error
	if err != nil {
		return nil, classify(err, "image by hash")
	}
	return &image, nil
}

// SetImageLocation records where an upload landed. It reports false when the
// image record no longer exists.
func (s *Store) SetImageLocation(ctx context.Context, id uint, url, publicID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", id).
		Updates(map[string]any{"url": url, "public_id": publicID})
	if result.Error != nil {
		return false, classify(result.Error, fmt.Sprintf("update image %d", id))
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) DeleteImage(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Delete(&models.Image{}, id).Error
	return classify(err, fmt.Sprintf("delete image %d", id))
}
