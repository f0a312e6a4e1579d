package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"-"`
	Total     decimal.Decimal `json:"-"`
}

func (r ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		UnitPrice string `json:"unit_price"`
		Total     string `json:"total"`
	}{
		Alias:     Alias(r),
		UnitPrice: r.UnitPrice.StringFixed(2),
		Total:     r.Total.StringFixed(2),
	})
}

// Receipt is derived from a committed sale for display and printing.
// It is never persisted.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Items         []ReceiptItem   `json:"items"`
	SubTotal      decimal.Decimal `json:"-"`
	Discount      decimal.Decimal `json:"-"`
	Tax           decimal.Decimal `json:"-"`
	Total         decimal.Decimal `json:"-"`
	Received      decimal.Decimal `json:"-"`
	Change        decimal.Decimal `json:"-"`
}

func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		SubTotal string `json:"sub_total"`
		Discount string `json:"discount"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
		Received string `json:"received"`
		Change   string `json:"change"`
	}{
		Alias:    Alias(r),
		SubTotal: r.SubTotal.StringFixed(2),
		Discount: r.Discount.StringFixed(2),
		Tax:      r.Tax.StringFixed(2),
		Total:    r.Total.StringFixed(2),
		Received: r.Received.StringFixed(2),
		Change:   r.Change.StringFixed(2),
	})
}
