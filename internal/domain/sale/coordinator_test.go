// internal/domain/sale/coordinator_test.go
package sale

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/rewards"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/salesync"
)

type fakeCache struct {
	stored   []*Sale
	storeErr error
}

func (c *fakeCache) Store(_ context.Context, s *Sale) error {
	if c.storeErr != nil {
		return c.storeErr
	}
	c.stored = append(c.stored, s)
	return nil
}

func (c *fakeCache) FindByReceipt(_ context.Context, receiptNumber string) (*Sale, error) {
	for _, s := range c.stored {
		if s.ReceiptNumber == receiptNumber {
			return s, nil
		}
	}
	return nil, ErrSaleNotFound
}

type fakeSaver struct {
	saved int
}

func (s *fakeSaver) Save(_ context.Context, _ *cart.Session) error {
	s.saved++
	return nil
}

type fakePersister struct {
	resp *salesync.RecordSaleResponse
	err  error
	got  *salesync.RecordSaleRequest
}

func (p *fakePersister) RecordSale(_ context.Context, req *salesync.RecordSaleRequest) (*salesync.RecordSaleResponse, error) {
	p.got = req
	return p.resp, p.err
}

type fakeRewarder struct {
	resp *rewards.IssueResponse
	err  error
}

func (r *fakeRewarder) Issue(_ context.Context, _ *rewards.IssueRequest) (*rewards.IssueResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

type fakeNotifier struct {
	notified chan string
}

func (n *fakeNotifier) MarkFulfilled(_ context.Context, orderID string, _ string) error {
	n.notified <- orderID
	return nil
}

type fakePrinter struct {
	tier string
	err  error
}

func (p *fakePrinter) PrintReceipt(_ context.Context, _ *Sale) (string, string, error) {
	if p.err != nil {
		return "", "", p.err
	}
	return p.tier, "", nil
}

type coordinatorFixture struct {
	coordinator *Coordinator
	cache       *fakeCache
	saver       *fakeSaver
	persister   *fakePersister
	rewarder    *fakeRewarder
	notifier    *fakeNotifier
	printer     *fakePrinter
}

func newFixture() *coordinatorFixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{}
	cfg.Services.Orders.Timeout = time.Second

	f := &coordinatorFixture{
		cache:     &fakeCache{},
		saver:     &fakeSaver{},
		persister: &fakePersister{resp: &salesync.RecordSaleResponse{Success: true, SaleID: 77}},
		rewarder:  &fakeRewarder{resp: &rewards.IssueResponse{Success: true, Code: "RW-1"}},
		notifier:  &fakeNotifier{notified: make(chan string, 1)},
		printer:   &fakePrinter{tier: "hardware"},
	}
	f.coordinator = NewCoordinator(
		f.cache, cfg, f.saver,
		f.persister, f.rewarder, f.notifier, f.printer,
		logger,
	)
	return f
}

func activeSession() *cart.Session {
	return &cart.Session{
		ID: "term-1",
		Lines: []cart.Line{
			{DisplayName: "Amoxicillin 500mg", UnitPrice: 120.00, Quantity: 2},
			{DisplayName: "Paracetamol 500mg (per piece)", UnitPrice: 2.50, Quantity: 10},
		},
		DiscountApplied: true,
		CashierName:     "Maria",
	}
}

func TestBeginPaymentEmptyCart(t *testing.T) {
	f := newFixture()
	session := &cart.Session{ID: "term-1"}

	_, err := f.coordinator.BeginPayment(session)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, f.coordinator.State("term-1"))
}

func TestBeginPaymentOpensPaymentStep(t *testing.T) {
	f := newFixture()
	session := activeSession()

	snapshot, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	assert.InDelta(t, 237.44, snapshot.Total, 0.001)
	assert.Equal(t, StateAwaitingPayment, f.coordinator.State("term-1"))

	// The payment step cannot be opened twice.
	_, err = f.coordinator.BeginPayment(session)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelPayment(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	require.NoError(t, f.coordinator.CancelPayment("term-1"))
	assert.Equal(t, StateIdle, f.coordinator.State("term-1"))
	assert.False(t, session.IsEmpty())

	assert.ErrorIs(t, f.coordinator.CancelPayment("term-1"), ErrInvalidTransition)
}

func TestCompleteRequiresPaymentStep(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.Complete(context.Background(), activeSession(),
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 500})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteInsufficientCash(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	_, err = f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 200})
	assert.ErrorIs(t, err, ErrInsufficientTender)

	// Still awaiting payment, cart intact.
	assert.Equal(t, StateAwaitingPayment, f.coordinator.State("term-1"))
	assert.False(t, session.IsEmpty())
}

func TestCompleteSuccess(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	result, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, f.coordinator.State("term-1"))
	assert.Equal(t, int64(77), result.Sale.SaleID)
	assert.InDelta(t, 62.56, result.Sale.ChangeDue, 0.001)
	assert.Equal(t, "RW-1", result.Sale.RewardCode)
	assert.Equal(t, "hardware", result.PrintTier)

	assert.True(t, session.IsEmpty())
	assert.Equal(t, 1, f.saver.saved)
	require.Len(t, f.cache.stored, 1)

	// The submission carried the re-derived pricing.
	assert.InDelta(t, 237.44, f.persister.got.Total, 0.001)
	assert.InDelta(t, 20.0, f.persister.got.DiscountPercent, 0.001)
}

func TestCompleteRevalidatesDiscountAtSubmission(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	// The cart shrank below the discount minimum after payment opened.
	session.Lines = session.Lines[1:]

	result, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 100})
	require.NoError(t, err)

	assert.False(t, result.Sale.Pricing.DiscountApplied)
	assert.InDelta(t, 0, f.persister.got.DiscountPercent, 0.001)
	assert.InDelta(t, 28.00, result.Sale.Pricing.Total, 0.001)
}

func TestCompletePersistenceFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.persister.resp = &salesync.RecordSaleResponse{Success: false, Message: "stock changed, please rescan"}
	f.persister.err = errors.New("sale rejected")

	session := activeSession()
	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	_, err = f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "stock changed, please rescan", persistErr.Error())

	// Rolled back: cart intact, payment can be retried.
	assert.Equal(t, StateAwaitingPayment, f.coordinator.State("term-1"))
	assert.False(t, session.IsEmpty())
	assert.Empty(t, f.cache.stored)
}

func TestCompleteRewardFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.rewarder.err = errors.New("reward service down")

	session := activeSession()
	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	result, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	assert.Empty(t, result.Sale.RewardCode)
	assert.Equal(t, StateCompleted, f.coordinator.State("term-1"))
}

func TestCompleteUsesAutoAwardedReward(t *testing.T) {
	f := newFixture()
	expiry := time.Now().Add(30 * 24 * time.Hour)
	f.persister.resp = &salesync.RecordSaleResponse{
		Success:         true,
		SaleID:          78,
		RewardCode:      "AUTO-9",
		RewardExpiresAt: &expiry,
	}

	session := activeSession()
	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	result, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	assert.Equal(t, "AUTO-9", result.Sale.RewardCode)
}

func TestCompletePrintFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.printer.err = errors.New("all print tiers failed")

	session := activeSession()
	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	result, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, f.coordinator.State("term-1"))
	assert.Empty(t, result.PrintTier)
}

func TestCompleteNotifiesResumedOrder(t *testing.T) {
	f := newFixture()
	session := activeSession()
	session.ResumedOrderID = "ord-42"

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)

	_, err = f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentGCash, AmountTendered: 237.44})
	require.NoError(t, err)

	select {
	case orderID := <-f.notifier.notified:
		assert.Equal(t, "ord-42", orderID)
	case <-time.After(time.Second):
		t.Fatal("order fulfillment was never reported")
	}
}

func TestNewSaleReadiesNextCustomer(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)
	_, err = f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	require.NoError(t, f.coordinator.NewSale("term-1"))
	assert.Equal(t, StateIdle, f.coordinator.State("term-1"))

	assert.ErrorIs(t, f.coordinator.NewSale("term-1"), ErrInvalidTransition)
}

func TestReprint(t *testing.T) {
	f := newFixture()
	session := activeSession()

	_, err := f.coordinator.BeginPayment(session)
	require.NoError(t, err)
	completed, err := f.coordinator.Complete(context.Background(), session,
		&CompleteRequest{PaymentMethod: PaymentCash, AmountTendered: 300})
	require.NoError(t, err)

	result, err := f.coordinator.Reprint(context.Background(), completed.Sale.ReceiptNumber)
	require.NoError(t, err)
	assert.Equal(t, completed.Sale.ReceiptNumber, result.Sale.ReceiptNumber)

	_, err = f.coordinator.Reprint(context.Background(), "OR-19990101-000000")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}
