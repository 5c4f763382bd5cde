package models

import "time"

// Image is created before its upload finishes, so URL and PublicID stay nil
// until the background upload writes them.
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	URL       *string   `json:"url"`
	PublicID  *string   `json:"public_id" gorm:"column:public_id"`
	UserID    uint      `json:"userId" gorm:"index:idx_images_user_hash;not null"`
	Hash      string    `json:"hash" gorm:"size:64;index:idx_images_user_hash;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Image) Uploaded() bool {
	return i.URL != nil && *i.URL != ""
}
