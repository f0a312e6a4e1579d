package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxPercentage = decimal.NewFromInt(100)

// CartService is the only writer of cart lines. Every operation runs under
// the session lock and is rejected while a sale is being submitted.
type CartService struct {
	sessionAccess
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(sessions repository.SessionRepository, engine *pricing.Engine, logger *zap.Logger) *CartService {
	return &CartService{
		sessionAccess: sessionAccess{repo: sessions, engine: engine},
		logger:        logger,
	}
}

// AddItem adds one unit of a catalog item to the cart
func (s *CartService) AddItem(ctx context.Context, sessionID uuid.UUID, key entity.ItemKey) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		item, ok := session.Catalog.Get(key)
		if !ok {
			return apperror.NewNotFoundError("Item " + key.String())
		}
		if _, err := session.Cart.AddItem(item); err != nil {
			s.logRejection("add item", sessionID, key, err)
			return err
		}
		invalidatePendingCheckout(session)
		return nil
	})
}

// UpdateQuantity sets a line's quantity, checked against current catalog
// stock. Zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, key entity.ItemKey, quantity int) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		item, ok := session.Catalog.Get(key)
		if !ok {
			if quantity <= 0 {
				session.Cart.Remove(key)
				invalidatePendingCheckout(session)
				return nil
			}
			return apperror.NewNotFoundError("Item " + key.String())
		}
		if err := session.Cart.UpdateQuantity(item, quantity); err != nil {
			s.logRejection("update quantity", sessionID, key, err)
			return err
		}
		invalidatePendingCheckout(session)
		return nil
	})
}

// RemoveItem deletes a line; removing an absent line is not an error
func (s *CartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, key entity.ItemKey) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		if session.Cart.Remove(key) {
			invalidatePendingCheckout(session)
		}
		return nil
	})
}

// Clear empties the cart and resets discount, tax and customer
func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		session.ClearCart()
		session.ResetCheckout()
		return nil
	})
}

// SetDiscount replaces the whole-cart discount
func (s *CartService) SetDiscount(ctx context.Context, sessionID uuid.UUID, spec entity.DiscountSpec) (*SessionView, error) {
	if err := ValidateDiscount(spec); err != nil {
		return nil, err
	}
	return s.mutate(sessionID, func(session *entity.Session) error {
		session.Discount = spec
		invalidatePendingCheckout(session)
		return nil
	})
}

// ValidateDiscount rejects negative values and percentages above 100
func ValidateDiscount(spec entity.DiscountSpec) error {
	if spec.Value.IsNegative() {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "value", Message: "Discount cannot be negative"},
		})
	}
	if spec.Kind == enum.DiscountPercentage && spec.Value.GreaterThan(maxPercentage) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "value", Message: "Percentage discount must be between 0 and 100"},
		})
	}
	return nil
}

// SetTax toggles SST on the cart
func (s *CartService) SetTax(ctx context.Context, sessionID uuid.UUID, enabled bool) (*SessionView, error) {
	return s.mutate(sessionID, func(session *entity.Session) error {
		if session.TaxEnabled != enabled {
			session.TaxEnabled = enabled
			invalidatePendingCheckout(session)
		}
		return nil
	})
}

// SetCustomer records the buyer's name and phone for the receipt
func (s *CartService) SetCustomer(ctx context.Context, sessionID uuid.UUID, customer entity.CustomerInfo) (*SessionView, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	return s.mutate(sessionID, func(session *entity.Session) error {
		session.Customer = customer
		return nil
	})
}

func (s *CartService) logRejection(op string, sessionID uuid.UUID, key entity.ItemKey, err error) {
	s.logger.Info("cart change rejected",
		zap.String("op", op),
		zap.String("session_id", sessionID.String()),
		zap.String("item", key.String()),
		zap.String("kind", string(apperror.KindOf(err))),
		zap.String("reason", err.Error()),
	)
}
