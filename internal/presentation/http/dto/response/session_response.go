package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DiscountResponse is the session discount as entered by the operator
type DiscountResponse struct {
	Kind  enum.DiscountKind `json:"kind"`
	Value string            `json:"value"`
}

// TaxResponse reports whether SST applies and at which rate
type TaxResponse struct {
	Enabled bool   `json:"enabled"`
	Rate    string `json:"rate"`
}

// TotalsResponse holds the displayed cart totals
type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// SessionResponse is the terminal-facing view of a session
type SessionResponse struct {
	ID              uuid.UUID             `json:"id"`
	OperatorID      uuid.UUID             `json:"operator_id"`
	Items           []entity.CartLine     `json:"items"`
	TotalUnits      int                   `json:"total_units"`
	Discount        DiscountResponse      `json:"discount"`
	Tax             TaxResponse           `json:"tax"`
	Totals          TotalsResponse        `json:"totals"`
	Customer        entity.CustomerInfo   `json:"customer"`
	Checkout        entity.CheckoutStatus `json:"checkout"`
	CatalogSize     int                   `json:"catalog_size"`
	CatalogSyncedAt *time.Time            `json:"catalog_synced_at,omitempty"`
	SalesCount      int                   `json:"sales_count"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// NewSessionResponse converts a session view
func NewSessionResponse(v *service.SessionView) *SessionResponse {
	if v == nil {
		return nil
	}
	items := v.Lines
	if items == nil {
		items = []entity.CartLine{}
	}
	r := &SessionResponse{
		ID:         v.ID,
		OperatorID: v.OperatorID,
		Items:      items,
		TotalUnits: v.TotalUnits,
		Discount: DiscountResponse{
			Kind:  v.Discount.Kind,
			Value: money(v.Discount.Value),
		},
		Tax: TaxResponse{
			Enabled: v.TaxEnabled,
			Rate:    v.TaxRate.String(),
		},
		Totals: TotalsResponse{
			Subtotal: money(v.Summary.Subtotal),
			Discount: money(v.Summary.Discount),
			Tax:      money(v.Summary.Tax),
			Total:    money(v.Summary.Total),
		},
		Customer:    v.Customer,
		Checkout:    v.Checkout,
		CatalogSize: v.CatalogSize,
		SalesCount:  v.SalesCount,
		UpdatedAt:   v.UpdatedAt,
	}
	if !v.CatalogSyncedAt.IsZero() {
		synced := v.CatalogSyncedAt
		r.CatalogSyncedAt = &synced
	}
	return r
}
