package request

import "github.com/shopspring/decimal"

// ConfirmCheckoutRequest commits the pending checkout of a session.
// Token must be the one returned when the checkout was initiated.
type ConfirmCheckoutRequest struct {
	Token          string           `json:"token"`
	PaymentMethod  string           `json:"payment_method"`
	WorkerID       string           `json:"worker_id"`
	ReceivedAmount *decimal.Decimal `json:"received_amount"`
	Cashier        string           `json:"cashier" binding:"max=255"`
}
