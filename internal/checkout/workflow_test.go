package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/cart"
	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/ledger"
	"github.com/shopblue/storefront/internal/payment"
	"github.com/shopblue/storefront/internal/persistence"
)

// stubProvider pins the delegated provider's behavior per test.
type stubProvider struct {
	mu           sync.Mutex
	availableErr error
	result       payment.Result
	authorized   int // number of Authorize calls observed
}

func (p *stubProvider) Available(context.Context) error {
	return p.availableErr
}

func (p *stubProvider) Authorize(_ context.Context, amount float64, currency string) payment.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorized++
	r := p.result
	if r.Kind == payment.Authorized && r.Amount == 0 {
		r.Amount = amount
		r.Currency = currency
	}
	return r
}

type fixture struct {
	cart     *cart.Service
	ledger   *ledger.Ledger
	provider *stubProvider
	workflow *Workflow
	user     *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	snapshots := persistence.NewMemoryStore()

	cartSvc := cart.NewService(ctx, snapshots, zap.NewNop())
	orders := ledger.NewLedger(ctx, snapshots, zap.NewNop())
	provider := &stubProvider{result: payment.Result{Kind: payment.Authorized}}

	return &fixture{
		cart:     cartSvc,
		ledger:   orders,
		provider: provider,
		workflow: NewWorkflow(cartSvc, orders, provider, time.Millisecond, zap.NewNop()),
		user:     &domain.User{ID: "u1", Name: "Jane", Email: "jane@x.com"},
	}
}

func (f *fixture) fillCart(t *testing.T, price float64) {
	t.Helper()
	f.cart.AddItem(domain.Product{ID: "1", Name: "Headphones", Price: price})
}

var (
	validShipping = Shipping{FullName: "Jane", Email: "jane@x.com", Address: "123 Luxury Lane"}
	validCard     = CardDetails{Number: "4111111111111111", Expiry: "12/29", CVC: "123"}
)

func TestBegin_RequiresIdentity(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 50.00)

	_, err := f.workflow.Begin(nil)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestBegin_RequiresNonEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.workflow.Begin(f.user)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitDirect_EndToEnd(t *testing.T) {
	f := newFixture(t)

	// addItem twice -> one line, quantity 2.
	f.fillCart(t, 199.00)
	f.fillCart(t, 199.00)
	assert.Equal(t, 398.00, f.cart.Subtotal())

	// Clamp back down to quantity 1.
	f.cart.UpdateQuantity("1", -5)
	assert.Equal(t, 199.00, f.cart.Subtotal())

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, session.State)

	order, err := f.workflow.SubmitDirect(context.Background(), session.ID, validShipping, validCard)
	require.NoError(t, err)
	assert.Equal(t, 199.00, order.Total)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, "Jane", order.Customer.Name)
	assert.Equal(t, "jane@x.com", order.Customer.Email)

	assert.True(t, f.cart.IsEmpty())
	assert.Len(t, f.ledger.Orders(), 1)

	got, err := f.workflow.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, got.State)
	assert.Equal(t, order.ID, got.OrderID)
}

func TestSubmitDirect_ValidationBlocksSubmission(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 50.00)
	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	tests := []struct {
		name string
		ship Shipping
		card CardDetails
	}{
		{"missing name", Shipping{Email: "jane@x.com", Address: "a"}, validCard},
		{"missing email", Shipping{FullName: "Jane", Address: "a"}, validCard},
		{"bad email", Shipping{FullName: "Jane", Email: "nope", Address: "a"}, validCard},
		{"missing address", Shipping{FullName: "Jane", Email: "jane@x.com"}, validCard},
		{"missing card number", validShipping, CardDetails{Expiry: "12/29", CVC: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.workflow.SubmitDirect(context.Background(), session.ID, tt.ship, tt.card)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// Nothing reached the ledger and the cart survived.
	assert.Empty(t, f.ledger.Orders())
	assert.Equal(t, 50.00, f.cart.Subtotal())
}

func TestSubmitDelegated_FailurePreservesCart(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 50.00)
	f.provider.result = payment.Result{Kind: payment.ProviderError, Reason: "script blocked"}

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, Shipping{})
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	assert.Empty(t, f.ledger.Orders())
	assert.Equal(t, 50.00, f.cart.Subtotal())

	got, _ := f.workflow.Session(session.ID)
	assert.Equal(t, StateFailed, got.State)
	assert.Equal(t, "script blocked", got.FailReason)
}

func TestSubmitDelegated_UnavailableProvider(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 50.00)
	f.provider.availableErr = assert.AnError

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Zero(t, f.provider.authorized)

	got, _ := f.workflow.Session(session.ID)
	assert.Equal(t, StateFailed, got.State)

	// Shipping entered before the failure survives for the fallback path.
	assert.Equal(t, validShipping, got.Shipping)
}

func TestSubmitDelegated_CancelReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 50.00)
	f.provider.result = payment.Result{Kind: payment.Canceled}

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, Shipping{})
	assert.ErrorIs(t, err, ErrPaymentCanceled)

	got, _ := f.workflow.Session(session.ID)
	assert.Equal(t, StateIdle, got.State)
	assert.Empty(t, f.ledger.Orders())
	assert.Equal(t, 50.00, f.cart.Subtotal())
}

func TestSubmitDelegated_PayerIdentityFallback(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 75.00)
	f.provider.result = payment.Result{
		Kind:       payment.Authorized,
		PayerName:  "P. Payer",
		PayerEmail: "payer@provider.example.com",
	}

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	order, err := f.workflow.SubmitDelegated(context.Background(), session.ID, Shipping{})
	require.NoError(t, err)
	assert.Equal(t, "P. Payer", order.Customer.Name)
	assert.Equal(t, "payer@provider.example.com", order.Customer.Email)
	assert.Equal(t, 75.00, order.Total)
	assert.True(t, f.cart.IsEmpty())
}

func TestSubmitDelegated_LocalFieldsWinOverPayer(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 75.00)
	f.provider.result = payment.Result{
		Kind:       payment.Authorized,
		PayerName:  "P. Payer",
		PayerEmail: "payer@provider.example.com",
	}

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	order, err := f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	require.NoError(t, err)
	assert.Equal(t, "Jane", order.Customer.Name)
	assert.Equal(t, "jane@x.com", order.Customer.Email)
}

func TestExclusivity_OneOrderPerSession(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 120.00)

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	require.NoError(t, err)

	// A second submission through either strategy is rejected.
	_, err = f.workflow.SubmitDirect(context.Background(), session.ID, validShipping, validCard)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	assert.Len(t, f.ledger.Orders(), 1)
}

func TestFailedDelegatedThenDirect_OneOrderTotal(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 60.00)
	f.provider.result = payment.Result{Kind: payment.Declined, Reason: "insufficient funds"}

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	require.ErrorIs(t, err, ErrPaymentDeclined)

	// Switch back to the direct strategy; shipping survives the reset.
	got, err := f.workflow.SwitchStrategy(session.ID, StrategyDirect)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got.State)
	assert.Equal(t, validShipping, got.Shipping)
	assert.Empty(t, got.FailReason)

	order, err := f.workflow.SubmitDirect(context.Background(), session.ID, validShipping, validCard)
	require.NoError(t, err)
	assert.Equal(t, 60.00, order.Total)
	assert.Len(t, f.ledger.Orders(), 1)
}

func TestDoubleSubmission_SecondCallerRejected(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 30.00)

	// A long delay keeps the first submission in flight.
	f.workflow.processingDelay = 150 * time.Millisecond

	session, err := f.workflow.Begin(f.user)
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.workflow.SubmitDirect(context.Background(), session.ID, validShipping, validCard)
		firstDone <- err
	}()

	// Wait until the first submission is holding the Submitting state.
	require.Eventually(t, func() bool {
		s, err := f.workflow.Session(session.ID)
		return err == nil && s.State == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err = f.workflow.SubmitDirect(context.Background(), session.ID, validShipping, validCard)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	_, err = f.workflow.SubmitDelegated(context.Background(), session.ID, validShipping)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	_, err = f.workflow.SwitchStrategy(session.ID, StrategyDelegated)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	require.NoError(t, <-firstDone)
	assert.Len(t, f.ledger.Orders(), 1)
}

func TestSessionNotFound(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, 10.00)

	_, err := f.workflow.SubmitDirect(context.Background(), "missing", validShipping, validCard)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.workflow.Session("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCanTransition_StateTable(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateSubmitting, true},
		{StateIdle, StateSucceeded, false},
		{StateSubmitting, StateSucceeded, true},
		{StateSubmitting, StateFailed, true},
		{StateSubmitting, StateIdle, true},
		{StateFailed, StateSubmitting, true},
		{StateFailed, StateIdle, true},
		{StateSucceeded, StateSubmitting, false},
		{StateSucceeded, StateIdle, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
