package service

import (
	"context"
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

// SessionView is a consistent snapshot of a session taken under its lock
type SessionView struct {
	ID              uuid.UUID
	OperatorID      uuid.UUID
	Lines           []entity.CartLine
	TotalUnits      int
	Discount        entity.DiscountSpec
	TaxEnabled      bool
	TaxRate         decimal.Decimal
	Summary         pricing.Summary
	Customer        entity.CustomerInfo
	Checkout        entity.CheckoutStatus
	CatalogSize     int
	CatalogSyncedAt time.Time
	SalesCount      int
	UpdatedAt       time.Time
}

// sessionAccess loads sessions and runs operations under the session lock
type sessionAccess struct {
	repo   repository.SessionRepository
	engine *pricing.Engine
}

func (a sessionAccess) load(id uuid.UUID) (*entity.Session, error) {
	session, err := a.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// mutate runs fn under the lock unless a commit is outstanding.
func (a sessionAccess) mutate(id uuid.UUID, fn func(s *entity.Session) error) (*SessionView, error) {
	session, err := a.load(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	if session.Discarded {
		return nil, apperror.NewNotFoundError("Session")
	}
	if session.IsSubmitting() {
		return nil, apperror.ErrAlreadySubmitting
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.Touch()
	return a.view(session), nil
}

// read takes a snapshot under the lock. Reads are allowed while submitting.
func (a sessionAccess) read(id uuid.UUID) (*SessionView, error) {
	session, err := a.load(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	return a.view(session), nil
}

// view must be called with the session locked
func (a sessionAccess) view(s *entity.Session) *SessionView {
	lines := s.Cart.Lines()
	return &SessionView{
		ID:              s.ID,
		OperatorID:      s.OperatorID,
		Lines:           lines,
		TotalUnits:      s.Cart.TotalUnits(),
		Discount:        s.Discount,
		TaxEnabled:      s.TaxEnabled,
		TaxRate:         a.engine.TaxRate(),
		Summary:         a.engine.Summarize(lines, s.Discount, s.TaxEnabled),
		Customer:        s.Customer,
		Checkout:        s.Checkout,
		CatalogSize:     s.Catalog.Len(),
		CatalogSyncedAt: s.Catalog.SyncedAt,
		SalesCount:      len(s.Transactions),
		UpdatedAt:       s.UpdatedAt,
	}
}

// invalidatePendingCheckout drops an unconfirmed checkout after a price
// relevant edit, so a stale token cannot confirm a different cart.
func invalidatePendingCheckout(s *entity.Session) {
	if s.Checkout.State == enum.CheckoutAwaitingConfirmation {
		s.ResetCheckout()
	}
}

// SessionService creates and looks up POS sessions
type SessionService struct {
	sessionAccess
	catalog *CatalogService
	logger  *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	repo repository.SessionRepository,
	engine *pricing.Engine,
	catalog *CatalogService,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionAccess: sessionAccess{repo: repo, engine: engine},
		catalog:       catalog,
		logger:        logger,
	}
}

// Create opens a session for the operator and syncs its catalog. A failed
// sync is logged; the session is still usable once a later sync succeeds.
func (s *SessionService) Create(ctx context.Context, operatorID uuid.UUID) (*SessionView, error) {
	session := entity.NewSession(operatorID)
	if err := s.repo.Save(session); err != nil {
		return nil, err
	}

	if _, err := s.catalog.Sync(ctx, session.ID); err != nil {
		s.logger.Warn("initial catalog sync failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.String("operator_id", operatorID.String()),
	)
	return s.read(session.ID)
}

// Get returns a snapshot of the session
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	return s.read(id)
}

// Delete discards a session. A session with an outstanding commit cannot be
// discarded.
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.load(id)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()
	if session.IsSubmitting() {
		return apperror.ErrAlreadySubmitting
	}

	session.Discarded = true
	s.repo.Delete(id)
	s.logger.Info("session deleted", zap.String("session_id", id.String()))
	return nil
}

// Receipt returns the receipt of the last committed sale
func (s *SessionService) Receipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	if session.LastReceipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	receipt := *session.LastReceipt
	return &receipt, nil
}

// Transactions returns the sales committed in this session, newest first
func (s *SessionService) Transactions(ctx context.Context, id uuid.UUID) ([]entity.Transaction, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	out := make([]entity.Transaction, 0, len(session.Transactions))
	for i := len(session.Transactions) - 1; i >= 0; i-- {
		out = append(out, session.Transactions[i])
	}
	return out, nil
}
