package entity

import (
	"encoding/json"

	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CartLine is one distinct item in the cart. Prices are captured when the
// line is created and are not re-synced with later catalog changes.
type CartLine struct {
	Category          enum.Category   `json:"category"`
	ItemID            string          `json:"item_id"`
	DisplayName       string          `json:"display_name"`
	Quantity          int             `json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `json:"-"`
	UnitCostSnapshot  decimal.Decimal `json:"-"`
}

func (l CartLine) Key() ItemKey {
	return ItemKey{Category: l.Category, ID: l.ItemID}
}

// LineTotal returns unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPriceSnapshot.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		Key       string `json:"key"`
		UnitPrice string `json:"unit_price"`
		LineTotal string `json:"line_total"`
	}{
		Alias:     Alias(l),
		Key:       l.Key().String(),
		UnitPrice: l.UnitPriceSnapshot.StringFixed(2),
		LineTotal: l.LineTotal().StringFixed(2),
	})
}

// Cart is the ordered list of lines of one session. Every line satisfies
// 1 <= quantity <= stock at the time of its last mutation, and no two lines
// share a key.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{lines: []CartLine{}}
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line for key, if present
func (c *Cart) Line(key ItemKey) (CartLine, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// TotalUnits sums quantities across lines
func (c *Cart) TotalUnits() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) indexOf(key ItemKey) int {
	for i, l := range c.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of item. The cart is unchanged on error.
func (c *Cart) AddItem(item SellableItem) (CartLine, error) {
	if item.AvailableStock <= 0 {
		return CartLine{}, apperror.NewOutOfStockError(item.DisplayName)
	}

	if i := c.indexOf(item.Key()); i >= 0 {
		if c.lines[i].Quantity >= item.AvailableStock {
			return CartLine{}, apperror.NewStockLimitError(item.DisplayName, item.AvailableStock)
		}
		c.lines[i].Quantity++
		return c.lines[i], nil
	}

	line := CartLine{
		Category:          item.Category,
		ItemID:            item.ID,
		DisplayName:       item.DisplayName,
		Quantity:          1,
		UnitPriceSnapshot: item.UnitPrice,
		UnitCostSnapshot:  item.UnitCost,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQuantity sets the quantity of the line for item. item carries the
// current catalog stock. A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(item SellableItem, quantity int) error {
	key := item.Key()
	if quantity <= 0 {
		c.Remove(key)
		return nil
	}

	i := c.indexOf(key)
	if i < 0 {
		return apperror.NewNotFoundError("Cart line " + key.String())
	}
	if quantity > item.AvailableStock {
		return apperror.NewInsufficientStockError(item.DisplayName, quantity, item.AvailableStock)
	}
	c.lines[i].Quantity = quantity
	return nil
}

// Remove deletes the line for key. It reports whether a line was removed.
func (c *Cart) Remove(key ItemKey) bool {
	i := c.indexOf(key)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = []CartLine{}
}
