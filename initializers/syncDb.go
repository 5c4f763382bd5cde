package initializers

import (
	"fmt"
	"log"

	"github.com/Kariqs/farmkart-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Product{},
		&models.Order{},
		&models.CartItem{},
	)
	if err != nil {
		return fmt.Errorf("sync database: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
