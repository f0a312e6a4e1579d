package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NewStockLimitError("iPhone 13", 3)

	assert.True(t, errors.Is(err, ErrStockLimitReached))
	assert.False(t, errors.Is(err, ErrOutOfStock))
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Contains(t, err.Error(), "only 3 in stock")
}

func TestIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("cart: %w", NewOutOfStockError("Charger"))

	assert.True(t, errors.Is(wrapped, ErrOutOfStock))
	assert.Equal(t, KindOutOfStock, KindOf(wrapped))
}

func TestCommitFailedUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCommitFailedError(cause)

	assert.True(t, errors.Is(err, ErrCommitFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Sale commit failed: connection refused", err.Error())
	assert.Equal(t, http.StatusBadGateway, err.Code)
}

func TestGetAppErrorForeignError(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))

	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "boom", appErr.Message)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NewNotFoundError("Session"), KindNotFound},
		{"validation", NewValidationError([]FieldError{{Field: "value", Message: "must be >= 0"}}), KindValidation},
		{"payment", NewInsufficientPaymentError("10.00", "20.00"), KindInsufficientPayment},
		{"sentinel", ErrAlreadySubmitting, KindAlreadySubmitting},
		{"foreign", errors.New("x"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
