package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readyCart builds the worked example: two phones at 250 with a fixed 50
// discount and SST on.
func readyCart(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := openSession(t, f)
	_, err := f.cart.AddItem(ctx, id, phoneA)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, id, phoneA)
	require.NoError(t, err)
	_, err = f.cart.SetDiscount(ctx, id, entity.DiscountSpec{Kind: enum.DiscountFixed, Value: decimal.NewFromInt(50)})
	require.NoError(t, err)
	_, err = f.cart.SetTax(ctx, id, true)
	require.NoError(t, err)
	return id
}

func stockOf(t *testing.T, f *fixture, id uuid.UUID, key entity.ItemKey) int {
	t.Helper()
	s, err := f.sessions.Get(id)
	require.NoError(t, err)
	s.Lock()
	defer s.Unlock()
	item, ok := s.Catalog.Get(key)
	require.True(t, ok)
	return item.AvailableStock
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "477.00", ticket.ExpectedAmount.StringFixed(2))
	assert.Equal(t, enum.CheckoutAwaitingConfirmation, ticket.View.Checkout.State)

	received := decimal.NewFromInt(500)
	result, err := f.checkout.Confirm(ctx, id, ConfirmInput{
		Token:          ticket.Token,
		PaymentMethod:  enum.PaymentCash,
		WorkerID:       "7",
		ReceivedAmount: &received,
		Cashier:        "Siti",
	})
	require.NoError(t, err)

	require.Len(t, f.sales.payloads, 1)
	p := f.sales.payloads[0]
	require.Len(t, p.Items, 1)
	assert.Equal(t, "1", p.Items[0].ItemID)
	assert.Equal(t, enum.CategoryPhone, p.Items[0].Category)
	assert.Equal(t, 2, p.Items[0].Quantity)
	assert.Equal(t, "250.00", p.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "477.00", p.TotalAmount.StringFixed(2))
	assert.Equal(t, "500.00", p.PaidAmount.StringFixed(2))
	assert.Equal(t, "7", p.WorkerID)

	txn := result.Transaction
	assert.Equal(t, "501", txn.ID)
	assert.Equal(t, "500.00", txn.Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", txn.Discount.StringFixed(2))
	assert.Equal(t, "27.00", txn.Tax.StringFixed(2))
	assert.Equal(t, "150.00", txn.Profit.StringFixed(2))
	assert.Equal(t, "23.00", txn.Change.StringFixed(2))

	assert.Equal(t, walkInCustomer, result.Receipt.Customer)
	assert.Equal(t, "23.00", result.Receipt.Change.StringFixed(2))
	assert.Equal(t, "Siti", result.Receipt.Cashier)

	assert.Empty(t, result.View.Lines)
	assert.Equal(t, enum.CheckoutIdle, result.View.Checkout.State)
	assert.Equal(t, 1, result.View.SalesCount)
	assert.False(t, result.View.TaxEnabled)
	assert.Equal(t, 3, stockOf(t, f, id, phoneA))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "501", f.publisher.events[0].TransactionID)
	assert.Equal(t, entity.SaleCommittedEventType, f.publisher.events[0].EventType)

	receipt, err := f.session.Receipt(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "501", receipt.TransactionID)
}

func TestCheckoutCommitFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	before, err := f.session.Get(ctx, id)
	require.NoError(t, err)
	stockBefore := stockOf(t, f, id, phoneA)

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)

	f.sales.err = errors.New("validation failed: worker_id unknown")
	_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "7"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrCommitFailed))
	assert.Contains(t, err.Error(), "worker_id unknown")

	after, err := f.session.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Lines, after.Lines)
	assert.Equal(t, before.Summary, after.Summary)
	assert.Equal(t, stockBefore, stockOf(t, f, id, phoneA))
	assert.Equal(t, enum.CheckoutAwaitingConfirmation, after.Checkout.State)
	assert.Contains(t, after.Checkout.LastFailure, "worker_id unknown")
	assert.Zero(t, after.SalesCount)
	assert.Empty(t, f.publisher.events)

	// same token retries once the collaborator recovers
	f.sales.err = nil
	result, err := f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "477.00", result.Transaction.Paid.StringFixed(2))
	assert.Equal(t, 3, stockOf(t, f, id, phoneA))
}

func TestCheckoutPreconditions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		id := openSession(t, f)
		_, err := f.checkout.Initiate(ctx, id)
		assert.Equal(t, apperror.KindEmptyCart, apperror.KindOf(err))
		view, err := f.checkout.Status(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, enum.CheckoutIdle, view.Checkout.State)
	})

	t.Run("not initiated", func(t *testing.T) {
		id := readyCart(t, f)
		_, err := f.checkout.Confirm(ctx, id, ConfirmInput{Token: uuid.New(), WorkerID: "1"})
		assert.Equal(t, apperror.KindCheckoutNotInitiated, apperror.KindOf(err))
	})

	t.Run("token mismatch", func(t *testing.T) {
		id := readyCart(t, f)
		_, err := f.checkout.Initiate(ctx, id)
		require.NoError(t, err)
		_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: uuid.New(), WorkerID: "1"})
		assert.Equal(t, apperror.KindConfirmationMismatch, apperror.KindOf(err))
	})

	t.Run("worker required", func(t *testing.T) {
		id := readyCart(t, f)
		ticket, err := f.checkout.Initiate(ctx, id)
		require.NoError(t, err)
		_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "  "})
		assert.Equal(t, apperror.KindWorkerRequired, apperror.KindOf(err))

		view, err := f.checkout.Status(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, enum.CheckoutAwaitingConfirmation, view.Checkout.State)
	})

	t.Run("insufficient payment", func(t *testing.T) {
		id := readyCart(t, f)
		ticket, err := f.checkout.Initiate(ctx, id)
		require.NoError(t, err)
		short := decimal.RequireFromString("476.99")
		_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1", ReceivedAmount: &short})
		assert.Equal(t, apperror.KindInsufficientPayment, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "477.00")
	})

	t.Run("invalid payment method", func(t *testing.T) {
		id := readyCart(t, f)
		ticket, err := f.checkout.Initiate(ctx, id)
		require.NoError(t, err)
		_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1", PaymentMethod: "bitcoin"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	assert.Empty(t, f.sales.payloads)
}

func TestCheckoutCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	view, err := f.checkout.Cancel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.CheckoutIdle, view.Checkout.State)

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)
	view, err = f.checkout.Cancel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.CheckoutIdle, view.Checkout.State)
	assert.Len(t, view.Lines, 1)

	_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
	assert.Equal(t, apperror.KindCheckoutNotInitiated, apperror.KindOf(err))
}

func TestCheckoutRejectsWhileSubmitting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	f.sales.started = make(chan struct{})
	f.sales.block = make(chan struct{})

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
		done <- err
	}()

	select {
	case <-f.sales.started:
	case <-time.After(2 * time.Second):
		t.Fatal("commit was not started")
	}

	_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(err))
	_, err = f.cart.AddItem(ctx, id, cableKey)
	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(err))
	_, err = f.checkout.Cancel(ctx, id)
	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(err))
	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(f.session.Delete(ctx, id)))
	_, err = f.catSvc.Sync(ctx, id)
	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(err))

	view, err := f.checkout.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.CheckoutSubmitting, view.Checkout.State)

	close(f.sales.block)
	require.NoError(t, <-done)
	assert.Len(t, f.sales.payloads, 1)
}

func TestDeleteRefusedWhileSubmittingKeepsSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	session, _ := f.sessions.Get(id)
	require.NotNil(t, session)
	session.Lock()
	session.Checkout.State = enum.CheckoutSubmitting
	session.Unlock()

	assert.Equal(t, apperror.KindAlreadySubmitting, apperror.KindOf(f.session.Delete(ctx, id)))
	still, _ := f.sessions.Get(id)
	assert.Same(t, session, still)
	assert.False(t, session.Discarded)
}

func TestConfirmOnDeletedSessionDoesNotCommit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := readyCart(t, f)

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)

	// A confirm that loaded the session before the delete took the lock.
	stale, _ := f.sessions.Get(id)
	require.NoError(t, f.session.Delete(ctx, id))
	assert.True(t, stale.Discarded)

	_, err = f.checkout.beginSubmit(stale, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, enum.CheckoutAwaitingConfirmation, stale.Checkout.State)

	_, err = f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, f.sales.payloads)
}

func TestCheckoutPublishFailureDoesNotFailSale(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()
	id := readyCart(t, f)

	ticket, err := f.checkout.Initiate(ctx, id)
	require.NoError(t, err)
	result, err := f.checkout.Confirm(ctx, id, ConfirmInput{Token: ticket.Token, WorkerID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "501", result.Transaction.ID)
}
