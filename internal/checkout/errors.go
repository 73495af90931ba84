package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrNoIdentity           = errors.New("checkout requires a signed-in session")
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrAlreadyCompleted     = errors.New("checkout session already produced an order")
	ErrValidation           = errors.New("missing required checkout fields")
	ErrProviderUnavailable  = errors.New("payment provider is unavailable")
	ErrPaymentDeclined      = errors.New("payment was declined")
	ErrPaymentCanceled      = errors.New("payment was canceled by the buyer")
)
