package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DiscountSpec is a whole-cart discount. Percentage values are 0-100.
type DiscountSpec struct {
	Kind  enum.DiscountKind `json:"kind"`
	Value decimal.Decimal   `json:"value"`
}

// NoDiscount is the session default: fixed 0.
func NoDiscount() DiscountSpec {
	return DiscountSpec{Kind: enum.DiscountFixed, Value: decimal.Zero}
}

// CustomerInfo is optional buyer information printed on the receipt
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CheckoutStatus tracks the checkout state machine of one session
type CheckoutStatus struct {
	State          enum.CheckoutState `json:"state"`
	Token          uuid.UUID          `json:"-"`
	ExpectedAmount decimal.Decimal    `json:"-"`
	InitiatedAt    time.Time          `json:"initiated_at,omitempty"`
	LastFailure    string             `json:"last_failure,omitempty"`
}

// Session is the explicit context of one POS terminal: cart, catalog
// snapshot, pricing options, checkout state and sales history. All fields
// are guarded by the session lock.
type Session struct {
	mu sync.Mutex

	ID           uuid.UUID
	OperatorID   uuid.UUID
	Cart         *Cart
	Catalog      *Catalog
	Discount     DiscountSpec
	TaxEnabled   bool
	Customer     CustomerInfo
	Checkout     CheckoutStatus
	Transactions []Transaction
	LastReceipt  *Receipt
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Discarded is set when the session was removed from the store. A
	// request that loaded it earlier must not act on it.
	Discarded bool
}

// NewSession creates an idle session with an empty cart and catalog
func NewSession(operatorID uuid.UUID) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New(),
		OperatorID:   operatorID,
		Cart:         NewCart(),
		Catalog:      NewCatalog(nil, time.Time{}),
		Discount:     NoDiscount(),
		Checkout:     CheckoutStatus{State: enum.CheckoutIdle},
		Transactions: []Transaction{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Touch records a mutation
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

// ClearCart empties the cart and resets discount, tax and customer to their
// defaults. Safe to call repeatedly.
func (s *Session) ClearCart() {
	s.Cart.Clear()
	s.Discount = NoDiscount()
	s.TaxEnabled = false
	s.Customer = CustomerInfo{}
	s.Touch()
}

// ResetCheckout returns the session to Idle
func (s *Session) ResetCheckout() {
	s.Checkout = CheckoutStatus{State: enum.CheckoutIdle}
}

// IsSubmitting reports whether a commit call is outstanding
func (s *Session) IsSubmitting() bool {
	return s.Checkout.State == enum.CheckoutSubmitting
}
