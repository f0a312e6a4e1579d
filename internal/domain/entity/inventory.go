package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PhoneModel is a phone make and model; stock lives on its variants
type PhoneModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Brand     string         `gorm:"size:100;not null;index" json:"brand"`
	ModelName string         `gorm:"size:150;not null" json:"model_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []PhoneVariant `gorm:"foreignKey:ModelID" json:"variants,omitempty"`
}

// TableName returns the table name for the PhoneModel model
func (PhoneModel) TableName() string {
	return "phone_models"
}

// PhoneVariant is a sellable configuration of a phone model
type PhoneVariant struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ModelID   uint            `gorm:"not null;index" json:"model_id"`
	Color     string          `gorm:"size:50" json:"color"`
	RAM       int             `gorm:"default:0" json:"ram"`
	Storage   int             `gorm:"default:0" json:"storage"`
	IMEI      string          `gorm:"size:20;index" json:"imei"`
	SellPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"-"`
	CostPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"-"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	Model PhoneModel `gorm:"foreignKey:ModelID" json:"-"`
}

// MarshalJSON renders the variant in the inventory API's item shape
func (v PhoneVariant) MarshalJSON() ([]byte, error) {
	type Alias PhoneVariant
	return json.Marshal(&struct {
		Alias
		Type      string          `json:"type"`
		ModelInfo json.RawMessage `json:"model_info"`
		SellPrice json.Number     `json:"sell_price"`
		CostPrice json.Number     `json:"cost_price"`
	}{
		Alias:     Alias(v),
		Type:      "phone",
		ModelInfo: modelInfo(v.Model),
		SellPrice: number(v.SellPrice),
		CostPrice: number(v.CostPrice),
	})
}

// TableName returns the table name for the PhoneVariant model
func (PhoneVariant) TableName() string {
	return "phone_variants"
}

// Accessory is a flat stock item such as a case or charger
type Accessory struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	SKU         string          `gorm:"size:100;index" json:"sku"`
	Brand       string          `gorm:"size:100" json:"brand"`
	Subcategory string          `gorm:"size:100" json:"subcategory"`
	SellPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"-"`
	CostPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"-"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a Accessory) MarshalJSON() ([]byte, error) {
	type Alias Accessory
	return json.Marshal(&struct {
		Alias
		Type      string      `json:"type"`
		SellPrice json.Number `json:"sell_price"`
		CostPrice json.Number `json:"cost_price"`
	}{
		Alias:     Alias(a),
		Type:      "accessory",
		SellPrice: number(a.SellPrice),
		CostPrice: number(a.CostPrice),
	})
}

// TableName returns the table name for the Accessory model
func (Accessory) TableName() string {
	return "accessories"
}

func modelInfo(m PhoneModel) json.RawMessage {
	data, _ := json.Marshal(map[string]string{
		"id":         strconv.FormatUint(uint64(m.ID), 10),
		"brand":      m.Brand,
		"model_name": m.ModelName,
	})
	return data
}
