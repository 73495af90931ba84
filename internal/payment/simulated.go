package payment

import (
	"context"
	"math/rand"
)

// OutcomeFunc decides the fate of a simulated charge. Swappable so tests
// can pin outcomes instead of rolling dice.
type OutcomeFunc func() ResultKind

// RandomOutcome approves ~95% of charges and declines the rest, matching
// the behavior of a demo gateway.
func RandomOutcome() ResultKind {
	if rand.Intn(100) < 95 {
		return Authorized
	}
	return Declined
}

// SimulatedProvider stands in for the real payment provider. It is always
// available and settles charges instantly using its outcome function.
type SimulatedProvider struct {
	outcome    OutcomeFunc
	payerName  string
	payerEmail string
}

func NewSimulatedProvider(outcome OutcomeFunc) *SimulatedProvider {
	if outcome == nil {
		outcome = RandomOutcome
	}
	return &SimulatedProvider{
		outcome:    outcome,
		payerName:  "Sandbox Buyer",
		payerEmail: "buyer@sandbox.example.com",
	}
}

func (p *SimulatedProvider) Available(context.Context) error {
	return nil
}

func (p *SimulatedProvider) Authorize(_ context.Context, amount float64, currency string) Result {
	switch p.outcome() {
	case Authorized:
		return Result{
			Kind:       Authorized,
			Amount:     amount,
			Currency:   currency,
			PayerName:  p.payerName,
			PayerEmail: p.payerEmail,
		}
	case Canceled:
		return Result{Kind: Canceled}
	case Unavailable:
		return Result{Kind: Unavailable}
	case ProviderError:
		return Result{Kind: ProviderError, Reason: "simulated provider fault"}
	default:
		return Result{Kind: Declined, Reason: "card declined by issuer"}
	}
}
