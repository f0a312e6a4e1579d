package service

import (
	"strings"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	walkInCustomer    = "Walk-in Customer"
	receiptDateLayout = "02/01/2006 15:04"
)

// NewReceipt projects a committed transaction onto a printable receipt
func NewReceipt(header entity.ReceiptHeader, txn entity.Transaction, cashier string) entity.Receipt {
	customer := strings.TrimSpace(txn.Customer.Name)
	if customer == "" {
		customer = walkInCustomer
	}

	items := make([]entity.ReceiptItem, 0, len(txn.Lines))
	for _, l := range txn.Lines {
		items = append(items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	r := entity.Receipt{
		Header:        header,
		TransactionID: txn.ID,
		Cashier:       cashier,
		Customer:      customer,
		CustomerPhone: strings.TrimSpace(txn.Customer.Phone),
		PaymentMethod: strings.ToUpper(string(txn.PaymentMethod)),
		Items:         items,
		SubTotal:      txn.Subtotal,
		Discount:      txn.Discount,
		Tax:           txn.Tax,
		Total:         txn.Total,
		Received:      txn.Paid,
		Change:        txn.Change,
	}
	if !txn.Date.IsZero() {
		r.Date = txn.Date.Format(receiptDateLayout)
	}
	return r
}
