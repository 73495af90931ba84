package payment

import "context"

// ResultKind discriminates provider outcomes. Provider payloads are decoded
// into a Result exactly once, at this boundary; the checkout workflow never
// inspects raw provider data.
type ResultKind int

const (
	// Authorized means the provider captured the payment.
	Authorized ResultKind = iota
	// Declined means the provider refused to finalize the authorization.
	Declined
	// Canceled means the buyer abandoned the provider flow.
	Canceled
	// Unavailable means the provider client could not be reached or is
	// blocked in this environment.
	Unavailable
	// ProviderError covers initialization, eligibility and runtime faults
	// reported by the provider.
	ProviderError
)

func (k ResultKind) String() string {
	switch k {
	case Authorized:
		return "authorized"
	case Declined:
		return "declined"
	case Canceled:
		return "canceled"
	case Unavailable:
		return "unavailable"
	default:
		return "error"
	}
}

// Result is the decoded outcome of one delegated payment attempt. Amount
// and payer identity are only meaningful when Kind is Authorized; Reason is
// only set for Declined and ProviderError.
type Result struct {
	Kind       ResultKind
	Amount     float64
	Currency   string
	PayerName  string
	PayerEmail string
	Reason     string
}

// Provider is the delegated payment capability. Available is the cheap
// pre-flight check the checkout view runs before rendering the provider
// button; Authorize runs the full create-and-capture round trip.
type Provider interface {
	Available(ctx context.Context) error
	Authorize(ctx context.Context, amount float64, currency string) Result
}
