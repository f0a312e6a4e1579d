package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepositoryEvictsLeastRecentlyUsed(t *testing.T) {
	repo, err := NewSessionRepository(2)
	require.NoError(t, err)

	a := entity.NewSession(uuid.New())
	b := entity.NewSession(uuid.New())
	c := entity.NewSession(uuid.New())
	require.NoError(t, repo.Save(a))
	require.NoError(t, repo.Save(b))

	got, err := repo.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, repo.Save(c))
	assert.Equal(t, 2, repo.Count())

	got, err = repo.Get(b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.True(t, repo.Delete(a.ID))
	assert.False(t, repo.Delete(a.ID))
	assert.Equal(t, 1, repo.Count())
}

func TestFilterStart(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 10, 14, 18, 30, 0, 0, time.Local)

	tests := []struct {
		filter domainRepo.TransactionFilter
		want   time.Time
		ok     bool
	}{
		{domainRepo.FilterToday, time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local), true},
		{domainRepo.FilterWeek, time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local), true},
		{domainRepo.FilterMonth, time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local), true},
		{domainRepo.FilterAll, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got, ok := filterStart(tt.filter, now)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestSaleRecordOf(t *testing.T) {
	p := &entity.SalePayload{
		Items: []entity.SaleLine{
			{ItemID: "3", Category: enum.CategoryAccessory, Quantity: 2, UnitPrice: decimal.NewFromInt(15), UnitCost: decimal.NewFromInt(5)},
		},
		TotalAmount:   decimal.NewFromInt(30),
		PaidAmount:    decimal.NewFromInt(50),
		Profit:        decimal.NewFromInt(20),
		PaymentMethod: enum.PaymentCard,
		WorkerID:      "9",
	}

	r := saleRecordOf(p)
	assert.False(t, r.SaleDate.IsZero())
	assert.Equal(t, "20", r.TotalProfit.String())
	require.Len(t, r.Items, 1)
	assert.Equal(t, enum.CategoryAccessory, r.Items[0].ItemType)
	assert.Equal(t, "5", r.Items[0].Cost.String())
}

func TestStockShortfallError(t *testing.T) {
	err := &StockShortfallError{Items: []string{"phone:1", "accessory:4"}}
	assert.Equal(t, "insufficient stock for phone:1, accessory:4", err.Error())
}

func TestCreateSaleErrorKeepsShortfallDistinct(t *testing.T) {
	short := &StockShortfallError{Items: []string{"phone:1"}}

	err := createSaleError(fmt.Errorf("transaction: %w", short))
	var got *StockShortfallError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, []string{"phone:1"}, got.Items)

	err = createSaleError(gorm.ErrInvalidTransaction)
	assert.False(t, errors.As(err, &got))
	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
	assert.EqualError(t, err, "create sale: invalid transaction")
}
