package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutTicket is returned by Initiate. Confirm must echo Token.
type CheckoutTicket struct {
	Token          uuid.UUID
	ExpectedAmount decimal.Decimal
	View           *SessionView
}

// ConfirmInput carries the operator's confirmation of a pending checkout
type ConfirmInput struct {
	Token         uuid.UUID
	PaymentMethod enum.PaymentMethod
	WorkerID      string
	// ReceivedAmount is nil when the terminal did not collect cash
	ReceivedAmount *decimal.Decimal
	OperatorID     uuid.UUID
	Cashier        string
}

// CheckoutResult is the outcome of a committed sale
type CheckoutResult struct {
	Transaction entity.Transaction
	Receipt     entity.Receipt
	View        *SessionView
}

// CheckoutService drives the checkout state machine of a session:
// Idle -> AwaitingConfirmation -> Submitting -> Idle. The sale repository
// call is the single commit point; nothing in the session is mutated before
// it succeeds.
type CheckoutService struct {
	sessionAccess
	saleRepo  repository.SaleRepository
	publisher repository.EventPublisher
	header    entity.ReceiptHeader
	logger    *zap.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	sessions repository.SessionRepository,
	engine *pricing.Engine,
	saleRepo repository.SaleRepository,
	publisher repository.EventPublisher,
	header entity.ReceiptHeader,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessionAccess: sessionAccess{repo: sessions, engine: engine},
		saleRepo:      saleRepo,
		publisher:     publisher,
		header:        header,
		logger:        logger,
		now:           time.Now,
	}
}

// Initiate moves an Idle session with a non-empty cart to
// AwaitingConfirmation and issues a confirmation token. Initiating again
// while awaiting confirmation replaces the token and expected amount.
func (s *CheckoutService) Initiate(ctx context.Context, sessionID uuid.UUID) (*CheckoutTicket, error) {
	var ticket CheckoutTicket
	view, err := s.mutate(sessionID, func(session *entity.Session) error {
		if session.Cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}
		summary := s.engine.Summarize(session.Cart.Lines(), session.Discount, session.TaxEnabled)
		session.Checkout = entity.CheckoutStatus{
			State:          enum.CheckoutAwaitingConfirmation,
			Token:          uuid.New(),
			ExpectedAmount: summary.Total,
			InitiatedAt:    s.now(),
		}
		ticket.Token = session.Checkout.Token
		ticket.ExpectedAmount = summary.Total
		return nil
	})
	if err != nil {
		return nil, err
	}
	ticket.View = view
	return &ticket, nil
}

// Cancel abandons a pending checkout. It is a no-op while Idle and is
// rejected while a commit is outstanding.
func (s *CheckoutService) Cancel(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		session.ResetCheckout()
		return nil
	})
}

// Status returns the session with its checkout state. It is allowed while
// a commit is outstanding.
func (s *CheckoutService) Status(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	return s.read(sessionID)
}

// Confirm validates the pending checkout and commits the sale. On a commit
// failure the session returns to AwaitingConfirmation with its cart and
// catalog untouched, so the operator can retry or cancel.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID uuid.UUID, in ConfirmInput) (*CheckoutResult, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}

	payload, err := s.beginSubmit(session, in)
	if err != nil {
		return nil, err
	}

	// The session lock is not held here. Other requests see Submitting.
	result, commitErr := s.saleRepo.CreateSale(context.WithoutCancel(ctx), payload)

	session.Lock()
	if commitErr != nil {
		session.Checkout.State = enum.CheckoutAwaitingConfirmation
		session.Checkout.LastFailure = commitErr.Error()
		session.Touch()
		session.Unlock()

		s.logger.Warn("sale commit failed",
			zap.String("session_id", sessionID.String()),
			zap.Int("lines", len(payload.Items)),
			zap.String("total", payload.TotalAmount.StringFixed(2)),
			zap.Error(commitErr),
		)
		return nil, apperror.NewCommitFailedError(commitErr)
	}
	out := s.completeSubmit(session, payload, result, in.Cashier)
	session.Unlock()

	s.logger.Info("sale committed",
		zap.String("session_id", sessionID.String()),
		zap.String("transaction_id", out.Transaction.ID),
		zap.String("total", out.Transaction.Total.StringFixed(2)),
		zap.Int("units", payload.TotalUnits()),
	)
	s.publish(ctx, sessionID, out.Transaction.ID, payload)
	return out, nil
}

// beginSubmit checks every precondition under the lock and moves the
// session to Submitting. It returns the payload to commit.
func (s *CheckoutService) beginSubmit(session *entity.Session, in ConfirmInput) (*entity.SalePayload, error) {
	session.Lock()
	defer session.Unlock()

	if session.Discarded {
		return nil, apperror.NewNotFoundError("Session")
	}
	switch session.Checkout.State {
	case enum.CheckoutSubmitting:
		return nil, apperror.ErrAlreadySubmitting
	case enum.CheckoutIdle:
		return nil, apperror.ErrCheckoutNotInitiated
	}
	if in.Token == uuid.Nil || in.Token != session.Checkout.Token {
		return nil, apperror.ErrConfirmationMismatch
	}
	if session.Cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	workerID := strings.TrimSpace(in.WorkerID)
	if workerID == "" {
		return nil, apperror.ErrWorkerRequired
	}
	method := in.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "Payment method must be cash, card or ewallet"},
		})
	}

	lines := session.Cart.Lines()
	summary := s.engine.Summarize(lines, session.Discount, session.TaxEnabled)
	received := summary.Total
	if in.ReceivedAmount != nil {
		received = *in.ReceivedAmount
		if received.LessThan(summary.Total) {
			s.logger.Info("checkout rejected",
				zap.String("session_id", session.ID.String()),
				zap.String("kind", string(apperror.KindInsufficientPayment)),
			)
			return nil, apperror.NewInsufficientPaymentError(received.StringFixed(2), summary.Total.StringFixed(2))
		}
	}

	payload := BuildSalePayload(lines, summary, SaleAttribution{
		PaymentMethod: method,
		WorkerID:      workerID,
		CreatedBy:     createdBy(in.OperatorID, session.OperatorID),
		Customer:      session.Customer,
		Paid:          received,
		Date:          s.now(),
	})

	session.Checkout.State = enum.CheckoutSubmitting
	session.Checkout.LastFailure = ""
	return payload, nil
}

// completeSubmit reconciles the session after a successful commit. It must
// be called with the session locked.
func (s *CheckoutService) completeSubmit(session *entity.Session, payload *entity.SalePayload, result *entity.SaleResult, cashier string) *CheckoutResult {
	for _, line := range payload.Items {
		session.Catalog.DecrementStock(line.Key(), line.Quantity)
	}

	txnID := ""
	if result != nil {
		txnID = result.ID
	}
	txn := TransactionFromPayload(txnID, payload)
	session.Transactions = append(session.Transactions, txn)

	receipt := NewReceipt(s.header, txn, cashier)
	session.LastReceipt = &receipt

	session.ClearCart()
	session.ResetCheckout()
	return &CheckoutResult{
		Transaction: txn,
		Receipt:     receipt,
		View:        s.view(session),
	}
}

func (s *CheckoutService) publish(ctx context.Context, sessionID uuid.UUID, txnID string, payload *entity.SalePayload) {
	if s.publisher == nil {
		return
	}
	event := entity.NewSaleCommittedEvent(sessionID, txnID, *payload)
	if err := s.publisher.PublishSaleCommitted(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error("failed to publish sale event",
			zap.String("transaction_id", txnID),
			zap.Error(err),
		)
	}
}

func createdBy(operatorID, sessionOperator uuid.UUID) string {
	if operatorID != uuid.Nil {
		return operatorID.String()
	}
	if sessionOperator != uuid.Nil {
		return sessionOperator.String()
	}
	return ""
}

// SaleAttribution holds the non-cart fields of a sale
type SaleAttribution struct {
	PaymentMethod enum.PaymentMethod
	WorkerID      string
	CreatedBy     string
	Customer      entity.CustomerInfo
	Paid          decimal.Decimal
	Date          time.Time
}

// BuildSalePayload assembles the submission from cart lines and their
// pricing summary
func BuildSalePayload(lines []entity.CartLine, summary pricing.Summary, attr SaleAttribution) *entity.SalePayload {
	items := make([]entity.SaleLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, entity.SaleLine{
			ItemID:    l.ItemID,
			Category:  l.Category,
			Name:      l.DisplayName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceSnapshot,
			UnitCost:  l.UnitCostSnapshot,
		})
	}
	return &entity.SalePayload{
		Items:          items,
		TotalAmount:    summary.Total,
		PaidAmount:     attr.Paid,
		PaymentMethod:  attr.PaymentMethod,
		WorkerID:       attr.WorkerID,
		CreatedBy:      attr.CreatedBy,
		Subtotal:       summary.Subtotal,
		DiscountAmount: summary.Discount,
		TaxAmount:      summary.Tax,
		Profit:         summary.Profit,
		CustomerName:   attr.Customer.Name,
		CustomerPhone:  attr.Customer.Phone,
		SaleDate:       attr.Date,
	}
}

// TransactionFromPayload records a committed payload in the session history
func TransactionFromPayload(id string, p *entity.SalePayload) entity.Transaction {
	return entity.Transaction{
		ID:            id,
		Date:          p.SaleDate,
		Subtotal:      p.Subtotal,
		Discount:      p.DiscountAmount,
		Tax:           p.TaxAmount,
		Total:         p.TotalAmount,
		Paid:          p.PaidAmount,
		Change:        pricing.Change(p.PaidAmount, p.TotalAmount),
		Profit:        p.Profit,
		PaymentMethod: p.PaymentMethod,
		WorkerID:      p.WorkerID,
		Customer:      entity.CustomerInfo{Name: p.CustomerName, Phone: p.CustomerPhone},
		Lines:         p.Items,
	}
}
