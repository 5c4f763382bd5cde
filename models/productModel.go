package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductType string

const (
	TypeVegetable   ProductType = "vegetable"
	TypeFruit       ProductType = "fruit"
	TypeFlower      ProductType = "flower"
	TypeTools       ProductType = "Tools"
	TypeFertilizers ProductType = "fertilizers"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeVegetable, TypeFruit, TypeFlower, TypeTools, TypeFertilizers:
		return true
	}
	return false
}

type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	OutOfStock StockStatus = "Out of Stock"
)

func (s StockStatus) Valid() bool {
	return s == InStock || s == OutOfStock
}

type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID            uint                               `json:"id" gorm:"primaryKey"`
	SellerID      uint                               `json:"sellerId" gorm:"index;not null"`
	Seller        *User                              `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Name          string                             `json:"productName" gorm:"size:255;not null"`
	Price         decimal.Decimal                    `json:"price" gorm:"type:decimal(12,2);not null"`
	Description   string                             `json:"description" gorm:"type:text"`
	Type          ProductType                        `json:"type" gorm:"size:32;index;not null"`
	Specification datatypes.JSONSlice[Specification] `json:"specification"`
	ImageID       *uint                              `json:"image" gorm:"index"`
	Image         *Image                             `json:"imageDetails,omitempty" gorm:"foreignKey:ImageID"`
	Status        StockStatus                        `json:"status" gorm:"size:32;not null"`
	CreatedAt     time.Time                          `json:"createdAt"`
	UpdatedAt     time.Time                          `json:"updatedAt"`
}

// ImageURL returns the uploaded image location, or nil while there is none.
func (p *Product) ImageURL() *string {
	if p.Image == nil {
		return nil
	}
	return p.Image.URL
}
