package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService formats receipts and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	sessions    *SessionService
	header      entity.ReceiptHeader
	printerType string
	width       int
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	sessions *SessionService,
	header entity.ReceiptHeader,
	printerType string,
	width int,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		sessions:    sessions,
		header:      header,
		printerType: printerType,
		width:       width,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a sample receipt. The receipt is returned even when
// printing fails so the caller can show it on screen.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	price := decimal.NewFromInt(10)
	receipt := &entity.Receipt{
		Header:        s.header,
		TransactionID: "TEST-001",
		Date:          "Test Date",
		Cashier:       "System",
		Customer:      walkInCustomer,
		PaymentMethod: "CASH",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: price, Total: price},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: price.Div(decimal.NewFromInt(2)), Total: price},
		},
		SubTotal: price.Mul(decimal.NewFromInt(2)),
		Total:    price.Mul(decimal.NewFromInt(2)),
		Received: price.Mul(decimal.NewFromInt(2)),
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintReceipt prints the last receipt of a session
func (s *PrinterService) PrintReceipt(ctx context.Context, sessionID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.sessions.Receipt(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.logger.Error("printer error",
			zap.String("session_id", sessionID.String()),
			zap.String("transaction_id", receipt.TransactionID),
			zap.Error(err),
		)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.AlignLeft).Rule('-')
	doc.Pair("Receipt:", r.TransactionID).
		Pair("Date:", r.Date)
	if r.Cashier != "" {
		doc.Pair("Cashier:", r.Cashier)
	}
	doc.Pair("Customer:", r.Customer)
	if r.CustomerPhone != "" {
		doc.Pair("Phone:", r.CustomerPhone)
	}
	if r.PaymentMethod != "" {
		doc.Pair("Payment:", r.PaymentMethod)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, item.Total.StringFixed(2))
		if item.Quantity > 1 {
			doc.Linef("   @ %s each", item.UnitPrice.StringFixed(2))
		}
	}
	doc.Rule('-')

	doc.Pair("Subtotal:", r.SubTotal.StringFixed(2))
	if r.Discount.IsPositive() {
		doc.Pair("Discount:", "-"+r.Discount.StringFixed(2))
	}
	if r.Tax.IsPositive() {
		doc.Pair("SST:", r.Tax.StringFixed(2))
	}
	doc.Bold(true).
		Pair("TOTAL:", r.Total.StringFixed(2)).
		Bold(false)
	if r.Received.IsPositive() {
		doc.Pair("Received:", r.Received.StringFixed(2)).
			Pair("Change:", r.Change.StringFixed(2))
	}
	doc.Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Feed(1).
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}
