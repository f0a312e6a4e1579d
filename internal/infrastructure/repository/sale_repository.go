package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// StockShortfallError lists the sale lines whose stock could not be
// decremented. The whole sale was rolled back.
type StockShortfallError struct {
	Items []string
}

func (e *StockShortfallError) Error() string {
	return "insufficient stock for " + strings.Join(e.Items, ", ")
}

type saleRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSaleRepository creates a sale repository over the local database
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db, now: time.Now}
}

// CreateSale decrements stock for every line and records the sale in one
// transaction. Any shortfall rolls back the whole sale.
func (r *saleRepository) CreateSale(ctx context.Context, payload *entity.SalePayload) (*entity.SaleResult, error) {
	record := saleRecordOf(payload)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shortfall []string
		for _, line := range payload.Items {
			ok, err := decrementStock(tx, line)
			if err != nil {
				return err
			}
			if !ok {
				shortfall = append(shortfall, line.Key().String())
			}
		}
		if len(shortfall) > 0 {
			return &StockShortfallError{Items: shortfall}
		}
		return tx.Create(record).Error
	})

	if err != nil {
		return nil, createSaleError(err)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return &entity.SaleResult{ID: record.ID.String(), Raw: raw}, nil
}

// createSaleError passes a stock shortfall through untouched so callers can
// match it with errors.As. Anything else is a storage failure.
func createSaleError(err error) error {
	var shortErr *StockShortfallError
	if errors.As(err, &shortErr) {
		return shortErr
	}
	return fmt.Errorf("create sale: %w", err)
}

// decrementStock lowers stock only when enough is left. It reports false for
// a shortfall or an id that does not exist.
func decrementStock(tx *gorm.DB, line entity.SaleLine) (bool, error) {
	id, err := strconv.ParseUint(line.ItemID, 10, 64)
	if err != nil {
		return false, nil
	}

	var model any
	switch line.Category {
	case enum.CategoryPhone:
		model = &entity.PhoneVariant{}
	case enum.CategoryAccessory:
		model = &entity.Accessory{}
	default:
		return false, nil
	}

	result := tx.Model(model).
		Where("id = ? AND quantity >= ?", id, line.Quantity).
		Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func saleRecordOf(p *entity.SalePayload) *entity.SaleRecord {
	date := p.SaleDate
	if date.IsZero() {
		date = time.Now()
	}
	record := &entity.SaleRecord{
		SaleDate:       date,
		Subtotal:       p.Subtotal,
		DiscountAmount: p.DiscountAmount,
		TaxAmount:      p.TaxAmount,
		TotalAmount:    p.TotalAmount,
		PaidAmount:     p.PaidAmount,
		TotalProfit:    p.Profit,
		PaymentMethod:  p.PaymentMethod,
		WorkerID:       p.WorkerID,
		CreatedBy:      p.CreatedBy,
		CustomerName:   p.CustomerName,
		CustomerPhone:  p.CustomerPhone,
	}
	for _, l := range p.Items {
		record.Items = append(record.Items, entity.SaleItemRecord{
			ItemID:   l.ItemID,
			ItemType: l.Category,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Cost:     l.UnitCost,
		})
	}
	return record
}

// FetchTransactions returns sales with their items, newest first, as a JSON
// array in the sales API's shape
func (r *saleRepository) FetchTransactions(ctx context.Context, filter domainRepo.TransactionFilter) ([]byte, error) {
	var sales []entity.SaleRecord
	if err := r.db.WithContext(ctx).
		Scopes(SaleDateScope(filter, r.now())).
		Preload("Items").
		Order("sale_date DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []entity.SaleRecord{}
	}
	return json.Marshal(sales)
}
