package models

// ProductFilter narrows catalog listings. Zero values match everything.
type ProductFilter struct {
	SellerID uint
	Type     ProductType
	Name     string
	Limit    int
}

// OrderLineFilter narrows joined order lines. Zero values match everything.
type OrderLineFilter struct {
	BuyerID  uint
	SellerID uint
	Status   OrderStatus
}
