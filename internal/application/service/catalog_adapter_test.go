package service

import (
	"testing"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedCatalog = `[
	{"id": 12, "type": "phone", "model_info": {"brand": "Apple", "model_name": "iPhone 13"},
	 "color": "Blue", "ram": 4, "storage": "128", "imei": "356789", "sell_price": "2500.00",
	 "cost_price": 2100, "quantity": 3},
	{"id": 12, "name": "Tempered Glass", "sku": "TG-01", "brand": "Spigen", "type": "Screen Protector",
	 "price": "25.5", "cost": "8", "stock": "40"},
	{"id": "7", "model_info": {"model_name": "Galaxy A15"}, "sell_price": "abc", "quantity": null},
	{"name": "no id, skipped"},
	"not an object"
]`

func TestNormalizeCatalogMixedShapes(t *testing.T) {
	items := NormalizeCatalog([]byte(mixedCatalog))
	require.Len(t, items, 3)

	p := items[0]
	assert.Equal(t, "12", p.ID)
	assert.Equal(t, enum.CategoryPhone, p.Category)
	assert.Equal(t, "iPhone 13 (128GB/4GB) - Blue", p.DisplayName)
	assert.Equal(t, "Apple", p.Brand)
	assert.Equal(t, "2500.00", p.UnitPrice.StringFixed(2))
	assert.Equal(t, "2100.00", p.UnitCost.StringFixed(2))
	assert.Equal(t, 3, p.AvailableStock)

	a := items[1]
	assert.Equal(t, "12", a.ID)
	assert.Equal(t, enum.CategoryAccessory, a.Category)
	assert.Equal(t, "Tempered Glass", a.DisplayName)
	assert.Equal(t, "Screen Protector", a.Subcategory)
	assert.Equal(t, "25.50", a.UnitPrice.StringFixed(2))
	assert.Equal(t, "8.00", a.UnitCost.StringFixed(2))
	assert.Equal(t, 40, a.AvailableStock)
	assert.NotEqual(t, p.Key(), a.Key())

	bad := items[2]
	assert.Equal(t, enum.CategoryPhone, bad.Category)
	assert.Equal(t, "Galaxy A15", bad.DisplayName)
	assert.Equal(t, unknownBrand, bad.Brand)
	assert.True(t, bad.UnitPrice.IsZero())
	assert.Equal(t, 0, bad.AvailableStock)
}

func TestNormalizeCatalogEnvelopes(t *testing.T) {
	t.Run("data envelope", func(t *testing.T) {
		items := NormalizeCatalog([]byte(`{"data": [{"id": 1, "name": "Case", "sell_price": 10, "quantity": 1}]}`))
		require.Len(t, items, 1)
		assert.Equal(t, enum.CategoryAccessory, items[0].Category)
		assert.Equal(t, defaultSubcategory, items[0].Subcategory)
	})

	t.Run("per-category lists", func(t *testing.T) {
		items := NormalizeCatalog([]byte(`{"phones": [{"id": 1, "sell_price": 10}], "accessories": [{"id": 1, "price": 5}]}`))
		require.Len(t, items, 2)
		assert.Equal(t, enum.CategoryPhone, items[0].Category)
		assert.Equal(t, "Phone", items[0].DisplayName)
		assert.Equal(t, enum.CategoryAccessory, items[1].Category)
	})
}

func TestNormalizeCatalogMalformedInput(t *testing.T) {
	for _, raw := range []string{``, `null`, `"oops"`, `42`, `{"error": "down"}`, `{not json`} {
		t.Run(raw, func(t *testing.T) {
			items := NormalizeCatalog([]byte(raw))
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestNegativeAmountsCoerceToZero(t *testing.T) {
	items := NormalizeCatalog([]byte(`[{"id": 1, "name": "Cable", "sell_price": -5, "quantity": "-2"}]`))
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.IsZero())
	assert.Equal(t, 0, items[0].AvailableStock)
}

func TestNormalizeTransactions(t *testing.T) {
	raw := `[
		{"id": 5, "sale_date": "2026-10-14T10:30:00+08:00", "total_amount": "477.00", "total_profit": 150,
		 "paid_amount": 500, "payment_method": "card", "worker_id": 3,
		 "items": [{"id": 12, "type": "phone", "quantity": 2, "price": 250}]},
		{"id": "TXN-1", "date": "garbage", "total": "abc"},
		{"date": "2026-10-13"}
	]`

	txns := NormalizeTransactions([]byte(raw))
	require.Len(t, txns, 3)

	first := txns[0]
	assert.Equal(t, "5", first.ID)
	assert.Equal(t, "477.00", first.Total.StringFixed(2))
	assert.Equal(t, "150.00", first.Profit.StringFixed(2))
	assert.Equal(t, "23.00", first.Change.StringFixed(2))
	assert.Equal(t, enum.PaymentCard, first.PaymentMethod)
	assert.Equal(t, "3", first.WorkerID)
	require.Len(t, first.Lines, 1)
	assert.Equal(t, enum.CategoryPhone, first.Lines[0].Category)
	assert.Equal(t, 2, first.Lines[0].Quantity)

	assert.True(t, txns[1].Date.IsZero())
	assert.True(t, txns[1].Total.IsZero())

	assert.Equal(t, 13, txns[2].Date.Day())
	assert.Equal(t, time.Local, txns[2].Date.Location())
}

func TestNormalizeTransactionsKeepsNegativeProfit(t *testing.T) {
	now := time.Now()
	today := now.Format("2006-01-02")
	raw := `[
		{"id": 1, "date": "` + today + `", "total": "80.00", "total_profit": "-20.00"},
		{"id": 2, "date": "` + today + `", "total": "130.00", "total_profit": "30.00"},
		{"id": 3, "date": "` + today + `", "total": "-5", "subtotal": "-5"}
	]`

	txns := NormalizeTransactions([]byte(raw))
	require.Len(t, txns, 3)

	assert.Equal(t, "-20.00", txns[0].Profit.StringFixed(2))
	assert.Equal(t, "30.00", txns[1].Profit.StringFixed(2))
	assert.True(t, txns[2].Total.IsZero())
	assert.True(t, txns[2].Subtotal.IsZero())
	assert.Equal(t, "10.00", TodayProfit(txns, now).StringFixed(2))
}
