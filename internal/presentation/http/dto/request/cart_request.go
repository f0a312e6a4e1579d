package request

import "github.com/shopspring/decimal"

// AddItemRequest adds one unit of a catalog item to the cart
type AddItemRequest struct {
	Category string `json:"category" binding:"required"`
	ItemID   string `json:"item_id" binding:"required,max=64"`
}

// UpdateQuantityRequest sets the quantity of a cart line. Zero or less
// removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type SetDiscountRequest struct {
	Kind  string           `json:"kind" binding:"required"`
	Value *decimal.Decimal `json:"value" binding:"required"`
}

type SetTaxRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type SetCustomerRequest struct {
	Name  string `json:"name" binding:"max=255"`
	Phone string `json:"phone" binding:"max=32"`
}
