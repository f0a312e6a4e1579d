package enum

import "strings"

// PaymentMethod is recorded on the sale; payment capture itself happens
// outside the system.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentEWallet PaymentMethod = "ewallet"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentEWallet:
		return true
	}
	return false
}

// ParsePaymentMethod defaults to cash for an empty value.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PaymentCash, true
	}
	if s == "e-wallet" {
		s = string(PaymentEWallet)
	}
	p := PaymentMethod(s)
	return p, p.Valid()
}
