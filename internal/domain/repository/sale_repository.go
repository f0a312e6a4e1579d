package repository

import (
	"context"
	"strings"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
)

// SaleRepository records sales with the persistence collaborator
type SaleRepository interface {
	// CreateSale is the single commit point of a checkout. It either records
	// the sale and decrements stock, or fails without side effects.
	CreateSale(ctx context.Context, payload *entity.SalePayload) (*entity.SaleResult, error)
	// FetchTransactions returns raw sale records as a JSON document
	FetchTransactions(ctx context.Context, filter TransactionFilter) ([]byte, error)
}

// TransactionFilter selects a date range of sale records
type TransactionFilter string

const (
	FilterToday TransactionFilter = "today"
	FilterWeek  TransactionFilter = "week"
	FilterMonth TransactionFilter = "month"
	FilterAll   TransactionFilter = "all"
)

// ParseTransactionFilter defaults to FilterAll for an empty value
func ParseTransactionFilter(s string) (TransactionFilter, bool) {
	switch f := TransactionFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, true
	case FilterToday, FilterWeek, FilterMonth, FilterAll:
		return f, true
	}
	return FilterAll, false
}
