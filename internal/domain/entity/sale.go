package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleLine is one line of a sale submission
type SaleLine struct {
	ItemID    string          `json:"id"`
	Category  enum.Category   `json:"type"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	UnitCost  decimal.Decimal `json:"-"`
}

func (l SaleLine) Key() ItemKey {
	return ItemKey{Category: l.Category, ID: l.ItemID}
}

// MarshalJSON writes money as JSON numbers, which is what the sales API reads
func (l SaleLine) MarshalJSON() ([]byte, error) {
	type Alias SaleLine
	return json.Marshal(&struct {
		Alias
		UnitPrice json.Number `json:"price"`
	}{
		Alias:     Alias(l),
		UnitPrice: number(l.UnitPrice),
	})
}

// SalePayload is the sale submitted to the persistence collaborator. It is
// built once per confirm from the cart and the pricing summary.
type SalePayload struct {
	Items          []SaleLine         `json:"items"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaidAmount     decimal.Decimal    `json:"paid_amount"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	WorkerID       string             `json:"worker_id"`
	CreatedBy      string             `json:"created_by,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Profit         decimal.Decimal    `json:"profit"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
}

func (p SalePayload) MarshalJSON() ([]byte, error) {
	type Alias SalePayload
	return json.Marshal(&struct {
		Alias
		TotalAmount    json.Number `json:"total_amount"`
		PaidAmount     json.Number `json:"paid_amount"`
		Subtotal       json.Number `json:"subtotal"`
		DiscountAmount json.Number `json:"discount_amount"`
		TaxAmount      json.Number `json:"tax_amount"`
		Profit         json.Number `json:"profit"`
	}{
		Alias:          Alias(p),
		TotalAmount:    number(p.TotalAmount),
		PaidAmount:     number(p.PaidAmount),
		Subtotal:       number(p.Subtotal),
		DiscountAmount: number(p.DiscountAmount),
		TaxAmount:      number(p.TaxAmount),
		Profit:         number(p.Profit),
	})
}

// TotalUnits sums quantities across lines
func (p *SalePayload) TotalUnits() int {
	n := 0
	for _, l := range p.Items {
		n += l.Quantity
	}
	return n
}

// SaleResult is what the collaborator returned for a created sale
type SaleResult struct {
	ID  string
	Raw []byte
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).String())
}
