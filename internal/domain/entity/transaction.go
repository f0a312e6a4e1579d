package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Transaction is a committed sale as seen by reporting. Records normalized
// from the backend may have a zero Date or zero amounts when the raw fields
// were missing or malformed.
type Transaction struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	Subtotal      decimal.Decimal    `json:"-"`
	Discount      decimal.Decimal    `json:"-"`
	Tax           decimal.Decimal    `json:"-"`
	Total         decimal.Decimal    `json:"-"`
	Paid          decimal.Decimal    `json:"-"`
	Change        decimal.Decimal    `json:"-"`
	Profit        decimal.Decimal    `json:"-"`
	PaymentMethod enum.PaymentMethod `json:"payment_method,omitempty"`
	WorkerID      string             `json:"worker_id,omitempty"`
	Customer      CustomerInfo       `json:"customer"`
	Lines         []SaleLine         `json:"items,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Subtotal string `json:"subtotal"`
		Discount string `json:"discount"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
		Paid     string `json:"paid"`
		Change   string `json:"change"`
		Profit   string `json:"profit"`
	}{
		Alias:    Alias(t),
		Subtotal: t.Subtotal.StringFixed(2),
		Discount: t.Discount.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
		Paid:     t.Paid.StringFixed(2),
		Change:   t.Change.StringFixed(2),
		Profit:   t.Profit.StringFixed(2),
	})
}
