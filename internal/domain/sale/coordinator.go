// internal/domain/sale/coordinator.go
package sale

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/pricing"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/rewards"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/salesync"
)

// State is where a register's transaction currently sits.
type State string

const (
	StateIdle            State = "idle"
	StateAwaitingPayment State = "awaiting_payment"
	StateSubmitting      State = "submitting"
	StateCompleted       State = "completed"
)

// Persister records a finalized sale with the Sale Persistence Service.
type Persister interface {
	RecordSale(ctx context.Context, req *salesync.RecordSaleRequest) (*salesync.RecordSaleResponse, error)
}

// RewardIssuer mints a reward code for a completed sale.
type RewardIssuer interface {
	Issue(ctx context.Context, req *rewards.IssueRequest) (*rewards.IssueResponse, error)
}

// OrderNotifier tells the online-order system a pickup order was fulfilled.
type OrderNotifier interface {
	MarkFulfilled(ctx context.Context, orderID string, receiptNumber string) error
}

// ReceiptPrinter delivers the physical (or fallback) receipt for a sale.
// Defined here so the coordinator never depends on the printing machinery.
type ReceiptPrinter interface {
	PrintReceipt(ctx context.Context, s *Sale) (tier string, plainText string, err error)
}

// SessionSaver persists the register session after the coordinator clears
// the cart on completion.
type SessionSaver interface {
	Save(ctx context.Context, session *cart.Session) error
}

// CompleteRequest is the tender the cashier confirmed.
type CompleteRequest struct {
	PaymentMethod  PaymentMethod `json:"payment_method" binding:"required,oneof=cash gcash card"`
	AmountTendered float64       `json:"amount_tendered" binding:"required"`
}

// CompleteResult is everything the register needs to close out the sale.
type CompleteResult struct {
	Sale      *Sale  `json:"sale"`
	PrintTier string `json:"print_tier,omitempty"`
	// Set when the manual fallback tier handled printing
	PlainText string `json:"plain_text,omitempty"`
}

// Coordinator drives one sale through
// Idle -> AwaitingPayment -> Submitting -> Completed, with rollback to
// AwaitingPayment when persistence fails. State is per register session;
// the coordinator is the only writer of it.
type Coordinator struct {
	mu     sync.Mutex
	states map[string]State

	cache     Cache
	config    *config.Config
	sessions  SessionSaver
	persister Persister
	rewarder  RewardIssuer
	notifier  OrderNotifier
	printer   ReceiptPrinter
	logger    *logrus.Logger
}

// NewCoordinator creates a new sale transaction coordinator
func NewCoordinator(
	cache Cache,
	cfg *config.Config,
	sessions SessionSaver,
	persister Persister,
	rewarder RewardIssuer,
	notifier OrderNotifier,
	printer ReceiptPrinter,
	logger *logrus.Logger,
) *Coordinator {
	return &Coordinator{
		states:    make(map[string]State),
		cache:     cache,
		config:    cfg,
		sessions:  sessions,
		persister: persister,
		rewarder:  rewarder,
		notifier:  notifier,
		printer:   printer,
		logger:    logger,
	}
}

// State returns the current transaction state for a register session.
func (c *Coordinator) State(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.states[sessionID]; ok {
		return s
	}
	return StateIdle
}

func (c *Coordinator) setState(sessionID string, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[sessionID] = s
}

// BeginPayment opens the payment step for a non-empty cart and returns the
// snapshot whose total is the amount due.
func (c *Coordinator) BeginPayment(session *cart.Session) (*pricing.Snapshot, error) {
	if c.State(session.ID) != StateIdle {
		return nil, ErrInvalidTransition
	}
	if session.IsEmpty() {
		return nil, ErrEmptyCart
	}

	snapshot := pricing.Price(session.Lines, session.DiscountApplied)
	c.setState(session.ID, StateAwaitingPayment)
	return &snapshot, nil
}

// CancelPayment returns an awaiting-payment transaction to Idle with the
// cart untouched.
func (c *Coordinator) CancelPayment(sessionID string) error {
	if c.State(sessionID) != StateAwaitingPayment {
		return ErrInvalidTransition
	}
	c.setState(sessionID, StateIdle)
	return nil
}

// NewSale acknowledges a completed transaction and readies the register
// for the next customer.
func (c *Coordinator) NewSale(sessionID string) error {
	if c.State(sessionID) != StateCompleted {
		return ErrInvalidTransition
	}
	c.setState(sessionID, StateIdle)
	return nil
}

// Complete submits the sale: validate tender, persist, issue reward,
// notify a resumed pickup order, print, clear the cart. Persistence
// failure rolls back to AwaitingPayment with cart and tender intact;
// everything after persistence is non-fatal.
func (c *Coordinator) Complete(ctx context.Context, session *cart.Session, req *CompleteRequest) (*CompleteResult, error) {
	if c.State(session.ID) != StateAwaitingPayment {
		return nil, ErrInvalidTransition
	}
	if session.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Pricing is re-derived at submission time; a cart edited after the
	// payment view opened can change the total or void the discount.
	snapshot := pricing.Price(session.Lines, session.DiscountApplied)

	if req.PaymentMethod == PaymentCash && req.AmountTendered < snapshot.Total {
		return nil, ErrInsufficientTender
	}

	c.setState(session.ID, StateSubmitting)

	now := time.Now().UTC()
	receiptNumber := NewReceiptNumber(now)

	discountPercent := 0.0
	if snapshot.DiscountApplied {
		discountPercent = pricing.DiscountRate * 100
	}

	resp, err := c.persister.RecordSale(ctx, &salesync.RecordSaleRequest{
		Lines:           session.Lines,
		Subtotal:        snapshot.Subtotal,
		Tax:             snapshot.TaxAmount,
		DiscountPercent: discountPercent,
		DiscountAmount:  snapshot.DiscountAmount,
		Total:           snapshot.Total,
		PaymentMethod:   string(req.PaymentMethod),
		AmountTendered:  req.AmountTendered,
		ReceiptNumber:   receiptNumber,
		CreatedAt:       now,
		CashierName:     session.CashierName,
	})
	if err != nil {
		// Roll back: cart and tender stay as they were.
		c.setState(session.ID, StateAwaitingPayment)
		message := ""
		if resp != nil {
			message = resp.Message
		}
		return nil, &PersistenceError{Message: message, Err: err}
	}

	s := &Sale{
		SaleID:         resp.SaleID,
		ReceiptNumber:  receiptNumber,
		Lines:          session.Lines,
		Pricing:        snapshot,
		PaymentMethod:  req.PaymentMethod,
		AmountTendered: pricing.Round2(req.AmountTendered),
		ChangeDue:      pricing.ChangeDue(req.AmountTendered, snapshot.Total),
		CashierName:    session.CashierName,
		CreatedAt:      now,
	}

	if resp.RewardCode != "" {
		// The sale already earned an auto-awarded loyalty credit.
		s.RewardCode = resp.RewardCode
		s.RewardExpiresAt = resp.RewardExpiresAt
	} else {
		c.requestReward(ctx, s)
	}

	if err := c.cache.Store(ctx, s); err != nil {
		c.logger.WithField("receipt", receiptNumber).
			WithField("error", err.Error()).
			Warn("Failed to cache sale locally, reprint unavailable")
	}

	if session.ResumedOrderID != "" {
		c.notifyOrderFulfilled(session.ResumedOrderID, receiptNumber)
	}

	session.Clear()
	if err := c.sessions.Save(ctx, session); err != nil {
		c.logger.WithField("session", session.ID).
			WithField("error", err.Error()).
			Warn("Failed to clear register session after sale")
	}

	c.setState(session.ID, StateCompleted)

	result := &CompleteResult{Sale: s}
	tier, plainText, printErr := c.printer.PrintReceipt(ctx, s)
	if printErr != nil {
		c.logger.WithField("receipt", receiptNumber).
			WithField("error", printErr.Error()).
			Error("Receipt printing failed on all tiers")
	} else {
		result.PrintTier = tier
		result.PlainText = plainText
	}

	return result, nil
}

// Reprint re-delivers the receipt for a cached sale.
func (c *Coordinator) Reprint(ctx context.Context, receiptNumber string) (*CompleteResult, error) {
	s, err := c.GetSale(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}

	tier, plainText, err := c.printer.PrintReceipt(ctx, s)
	if err != nil {
		return nil, err
	}

	return &CompleteResult{Sale: s, PrintTier: tier, PlainText: plainText}, nil
}

// GetSale fetches a locally cached sale by receipt number.
func (c *Coordinator) GetSale(ctx context.Context, receiptNumber string) (*Sale, error) {
	return c.cache.FindByReceipt(ctx, receiptNumber)
}

// requestReward asks the reward service for a code. Failure only costs the
// customer a QR section, never the sale.
func (c *Coordinator) requestReward(ctx context.Context, s *Sale) {
	resp, err := c.rewarder.Issue(ctx, &rewards.IssueRequest{
		OrderID:       s.SaleID,
		SaleReference: s.ReceiptNumber,
		CustomerLabel: "Walk-in",
		TotalAmount:   s.Pricing.Total,
	})
	if err != nil {
		c.logger.WithField("receipt", s.ReceiptNumber).
			WithField("error", err.Error()).
			Warn("Reward issuance failed, printing receipt without reward")
		return
	}

	if resp.Success && resp.Code != "" {
		s.RewardCode = resp.Code
		s.RewardExpiresAt = resp.ExpiresAt
	}
}

// notifyOrderFulfilled is fire-and-forget: the sale is already complete
// and an unreachable order service must not undo it.
func (c *Coordinator) notifyOrderFulfilled(orderID, receiptNumber string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.config.Services.Orders.Timeout)
		defer cancel()

		if err := c.notifier.MarkFulfilled(ctx, orderID, receiptNumber); err != nil {
			c.logger.WithField("order_id", orderID).
				WithField("error", err.Error()).
				Warn("Failed to notify order fulfillment")
		}
	}()
}
