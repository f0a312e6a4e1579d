package entity

import (
	"encoding/json"

	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ItemKey identifies a sellable item. Remote ids are only unique within a
// category, so the category is part of the key.
type ItemKey struct {
	Category enum.Category
	ID       string
}

func (k ItemKey) String() string {
	return k.Category.String() + ":" + k.ID
}

// SellableItem is a normalized catalog entry, phone variant or accessory.
type SellableItem struct {
	ID             string          `json:"id"`
	Category       enum.Category   `json:"category"`
	DisplayName    string          `json:"display_name"`
	Brand          string          `json:"brand,omitempty"`
	SKU            string          `json:"sku,omitempty"`
	Subcategory    string          `json:"subcategory,omitempty"`
	UnitPrice      decimal.Decimal `json:"-"`
	UnitCost       decimal.Decimal `json:"-"` // never shown to the buyer
	AvailableStock int             `json:"available_stock"`
}

// Key returns the catalog key of the item
func (i *SellableItem) Key() ItemKey {
	return ItemKey{Category: i.Category, ID: i.ID}
}

// InStock reports whether at least one unit is available
func (i *SellableItem) InStock() bool {
	return i.AvailableStock > 0
}

// MarshalJSON renders the price with two decimals and omits the cost
func (i SellableItem) MarshalJSON() ([]byte, error) {
	type Alias SellableItem
	return json.Marshal(&struct {
		Alias
		Key       string `json:"key"`
		UnitPrice string `json:"unit_price"`
	}{
		Alias:     Alias(i),
		Key:       i.Key().String(),
		UnitPrice: i.UnitPrice.StringFixed(2),
	})
}
