package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/cart"
	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/ledger"
	"github.com/shopblue/storefront/internal/payment"
)

// Shipping carries the buyer-entered delivery fields. All three are
// required for the direct strategy; the delegated strategy may leave them
// empty and fall back to payer identity from the provider.
type Shipping struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
}

// CardDetails are opaque strings: presence is validated, content is not.
type CardDetails struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVC    string `json:"cvc" validate:"required"`
}

// Session is the externally visible view of one checkout attempt.
type Session struct {
	ID         string          `json:"id"`
	State      State           `json:"state"`
	Strategy   PaymentStrategy `json:"strategy,omitempty"`
	Shipping   Shipping        `json:"shipping"`
	FailReason string          `json:"fail_reason,omitempty"`
	OrderID    string          `json:"order_id,omitempty"`
}

type session struct {
	Session
	lines []domain.CartLine // snapshot taken when a submission starts
}

// Workflow drives checkout attempts over the cart and order ledger. It
// guarantees exactly one order per successful attempt, and that the cart is
// cleared if and only if an order was created.
type Workflow struct {
	mu       sync.Mutex
	sessions map[string]*session

	cart     *cart.Service
	ledger   *ledger.Ledger
	provider payment.Provider
	validate *validator.Validate
	logger   *zap.Logger

	// processingDelay simulates the direct strategy's capture round trip.
	processingDelay time.Duration
	currency        string
}

func NewWorkflow(cartSvc *cart.Service, orders *ledger.Ledger, provider payment.Provider, delay time.Duration, logger *zap.Logger) *Workflow {
	return &Workflow{
		sessions:        make(map[string]*session),
		cart:            cartSvc,
		ledger:          orders,
		provider:        provider,
		validate:        validator.New(),
		logger:          logger,
		processingDelay: delay,
		currency:        "USD",
	}
}

// Begin opens a checkout attempt. An empty cart and a missing identity are
// both explicit precondition failures, never silent redirects.
func (w *Workflow) Begin(user *domain.User) (Session, error) {
	if user == nil {
		return Session{}, ErrNoIdentity
	}
	if w.cart.IsEmpty() {
		return Session{}, ErrEmptyCart
	}

	s := &session{Session: Session{
		ID:    uuid.New().String(),
		State: StateIdle,
	}}

	w.mu.Lock()
	w.sessions[s.ID] = s
	w.mu.Unlock()

	return s.Session, nil
}

// Session returns a copy of the attempt's current view.
func (w *Workflow) Session(id string) (Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s.Session, nil
}

// SubmitDirect runs the manual card-capture strategy: validate, simulate
// the capture delay, place the order, clear the cart. The simulated capture
// is not abortable once started; a dropped caller context does not undo it.
func (w *Workflow) SubmitDirect(ctx context.Context, sessionID string, ship Shipping, card CardDetails) (domain.Order, error) {
	if err := w.validate.Struct(ship); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := w.validate.Struct(card); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s, err := w.beginSubmission(sessionID, StrategyDirect, ship)
	if err != nil {
		return domain.Order{}, err
	}

	// Explicit task rather than a bare sleep so the delay stays visible to
	// the caller's trace even though it cannot be canceled.
	timer := time.NewTimer(w.processingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		w.logger.Info("caller went away mid-capture, completing anyway",
			zap.String("session_id", sessionID))
		<-timer.C
	}

	order := w.finishSuccess(s, domain.Customer{Name: ship.FullName, Email: ship.Email})
	return order, nil
}

// SubmitDelegated hands payment capture to the external provider and folds
// its decoded result back into the session. A failed attempt never creates
// an order and never touches the cart; entered shipping fields survive on
// the session so the buyer can switch back to the direct strategy.
func (w *Workflow) SubmitDelegated(ctx context.Context, sessionID string, ship Shipping) (domain.Order, error) {
	s, err := w.beginSubmission(sessionID, StrategyDelegated, ship)
	if err != nil {
		return domain.Order{}, err
	}

	if err := w.provider.Available(ctx); err != nil {
		w.logger.Warn("payment provider unavailable",
			zap.String("session_id", sessionID), zap.Error(err))
		w.finishFailure(s, "payment provider unavailable")
		return domain.Order{}, ErrProviderUnavailable
	}

	amount := subtotal(s.lines)
	result := w.provider.Authorize(ctx, amount, w.currency)

	switch result.Kind {
	case payment.Authorized:
		customer := domain.Customer{Name: ship.FullName, Email: ship.Email}
		if customer.Name == "" {
			customer.Name = result.PayerName
		}
		if customer.Email == "" {
			customer.Email = result.PayerEmail
		}
		order := w.finishSuccess(s, customer)
		return order, nil

	case payment.Canceled:
		// Buyer backed out: return to Idle with no side effects.
		w.setState(s, StateIdle, "")
		return domain.Order{}, ErrPaymentCanceled

	case payment.Unavailable:
		w.finishFailure(s, "payment provider unavailable")
		return domain.Order{}, ErrProviderUnavailable

	default:
		reason := result.Reason
		if reason == "" {
			reason = "payment could not be completed"
		}
		w.finishFailure(s, reason)
		return domain.Order{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
	}
}

// SwitchStrategy tears down a failed attempt's provider state so the next
// submission starts clean. Shipping fields entered so far are kept.
func (w *Workflow) SwitchStrategy(sessionID string, strategy PaymentStrategy) (Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.State == StateSubmitting {
		return Session{}, ErrSubmissionInProgress
	}
	if s.State == StateSucceeded {
		return Session{}, ErrAlreadyCompleted
	}

	s.Strategy = strategy
	s.State = StateIdle
	s.FailReason = ""
	s.lines = nil
	return s.Session, nil
}

// beginSubmission moves a session into Submitting and snapshots the cart.
// It is the single gate that rejects double submission and reuse of a
// session that already produced an order.
func (w *Workflow) beginSubmission(sessionID string, strategy PaymentStrategy, ship Shipping) (*session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	switch s.State {
	case StateSubmitting:
		return nil, ErrSubmissionInProgress
	case StateSucceeded:
		return nil, ErrAlreadyCompleted
	}

	lines := w.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if !canTransition(s.State, StateSubmitting) {
		return nil, fmt.Errorf("illegal checkout transition from %s", s.State)
	}

	s.State = StateSubmitting
	s.Strategy = strategy
	s.Shipping = ship
	s.FailReason = ""
	s.lines = lines
	return s, nil
}

func (w *Workflow) finishSuccess(s *session, customer domain.Customer) domain.Order {
	order := w.ledger.PlaceOrder(s.lines, customer)
	w.cart.Clear()

	w.mu.Lock()
	s.State = StateSucceeded
	s.OrderID = order.ID
	s.lines = nil
	w.mu.Unlock()

	w.logger.Info("checkout succeeded",
		zap.String("session_id", s.ID),
		zap.String("order_id", order.ID),
		zap.String("strategy", string(s.Strategy)),
		zap.Float64("total", order.Total))
	return order
}

func (w *Workflow) finishFailure(s *session, reason string) {
	w.setState(s, StateFailed, reason)
}

func (w *Workflow) setState(s *session, state State, reason string) {
	w.mu.Lock()
	s.State = state
	s.FailReason = reason
	s.lines = nil
	w.mu.Unlock()
}

func subtotal(lines []domain.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
