package checkout

// State is the lifecycle of one checkout attempt.
type State string

const (
	StateIdle       State = "IDLE"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded
}

func (s State) String() string {
	return string(s)
}

// canTransition guards every state change of a checkout session. Failed is
// recoverable: the buyer may resubmit or switch strategy, so Failed feeds
// back into Submitting and Idle. Succeeded accepts nothing.
func canTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateSubmitting
	case StateSubmitting:
		return to == StateSucceeded || to == StateFailed || to == StateIdle
	case StateFailed:
		return to == StateSubmitting || to == StateIdle
	default:
		return false
	}
}

// PaymentStrategy selects how a checkout attempt captures payment. The two
// strategies are mutually exclusive within a single attempt.
type PaymentStrategy string

const (
	StrategyDirect    PaymentStrategy = "DIRECT"
	StrategyDelegated PaymentStrategy = "DELEGATED"
)
