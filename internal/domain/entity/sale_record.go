package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRecord is a persisted sale in the PostgreSQL backend
type SaleRecord struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleDate       time.Time          `gorm:"not null;index" json:"sale_date"`
	Subtotal       decimal.Decimal    `gorm:"type:numeric(12,2);default:0" json:"-"`
	DiscountAmount decimal.Decimal    `gorm:"type:numeric(12,2);default:0" json:"-"`
	TaxAmount      decimal.Decimal    `gorm:"type:numeric(12,2);default:0" json:"-"`
	TotalAmount    decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"-"`
	PaidAmount     decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"-"`
	TotalProfit    decimal.Decimal    `gorm:"type:numeric(12,2);default:0" json:"-"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	WorkerID       string             `gorm:"size:64;not null;index" json:"worker_id"`
	CreatedBy      string             `gorm:"size:64" json:"created_by,omitempty"`
	CustomerName   string             `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone  string             `gorm:"size:50" json:"customer_phone,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	Items []SaleItemRecord `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON renders the record in the sales API's shape
func (s SaleRecord) MarshalJSON() ([]byte, error) {
	type Alias SaleRecord
	return json.Marshal(&struct {
		Alias
		Subtotal       json.Number `json:"subtotal"`
		DiscountAmount json.Number `json:"discount_amount"`
		TaxAmount      json.Number `json:"tax_amount"`
		TotalAmount    json.Number `json:"total_amount"`
		PaidAmount     json.Number `json:"paid_amount"`
		TotalProfit    json.Number `json:"total_profit"`
	}{
		Alias:          Alias(s),
		Subtotal:       number(s.Subtotal),
		DiscountAmount: number(s.DiscountAmount),
		TaxAmount:      number(s.TaxAmount),
		TotalAmount:    number(s.TotalAmount),
		PaidAmount:     number(s.PaidAmount),
		TotalProfit:    number(s.TotalProfit),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *SaleRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleRecord model
func (SaleRecord) TableName() string {
	return "sales"
}

// SaleItemRecord is a persisted sale line
type SaleItemRecord struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	SaleID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ItemID   string          `gorm:"size:64;not null" json:"id"`
	ItemType enum.Category   `gorm:"type:varchar(20);not null" json:"type"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"-"`
	Cost     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"-"`
}

func (i SaleItemRecord) MarshalJSON() ([]byte, error) {
	type Alias SaleItemRecord
	return json.Marshal(&struct {
		Alias
		Price     json.Number `json:"price"`
		CostPrice json.Number `json:"cost_price"`
	}{
		Alias:     Alias(i),
		Price:     number(i.Price),
		CostPrice: number(i.Cost),
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItemRecord) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItemRecord model
func (SaleItemRecord) TableName() string {
	return "sale_items"
}
