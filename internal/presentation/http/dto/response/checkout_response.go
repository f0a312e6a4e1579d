package response

import (
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
)

// CheckoutTicketResponse is returned when a checkout is initiated. The
// terminal shows ExpectedAmount and echoes Token on confirm.
type CheckoutTicketResponse struct {
	Token          uuid.UUID        `json:"token"`
	ExpectedAmount string           `json:"expected_amount"`
	Session        *SessionResponse `json:"session"`
}

func NewCheckoutTicketResponse(t *service.CheckoutTicket) *CheckoutTicketResponse {
	return &CheckoutTicketResponse{
		Token:          t.Token,
		ExpectedAmount: money(t.ExpectedAmount),
		Session:        NewSessionResponse(t.View),
	}
}

// CheckoutResultResponse is returned for a committed sale
type CheckoutResultResponse struct {
	Transaction entity.Transaction `json:"transaction"`
	Receipt     entity.Receipt     `json:"receipt"`
	Session     *SessionResponse   `json:"session"`
}

func NewCheckoutResultResponse(r *service.CheckoutResult) *CheckoutResultResponse {
	return &CheckoutResultResponse{
		Transaction: r.Transaction,
		Receipt:     r.Receipt,
		Session:     NewSessionResponse(r.View),
	}
}
