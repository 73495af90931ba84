package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// HTTPProvider talks to the real payment provider's REST gateway. All
// transport failures surface as Unavailable and all malformed payloads as
// ProviderError, so callers only ever see a decoded Result. Repeated
// failures trip a circuit breaker that short-circuits to Unavailable.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*captureResponse]
	logger  *zap.Logger
}

type captureRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type captureResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Payer  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"payer"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func NewHTTPProvider(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	breaker := gobreaker.NewCircuitBreaker[*captureResponse](gobreaker.Settings{
		Name: "payment-provider",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		Timeout: 30 * time.Second,
	})

	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

// Available probes the provider's status endpoint. A non-2xx answer or any
// transport error means the provider cannot be rendered right now.
func (p *HTTPProvider) Available(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/status", nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider status %d", resp.StatusCode)
	}
	return nil
}

func (p *HTTPProvider) Authorize(ctx context.Context, amount float64, currency string) Result {
	capture, err := p.breaker.Execute(func() (*captureResponse, error) {
		return p.capture(ctx, amount, currency)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Result{Kind: Unavailable}
		}
		var decodeErr *decodeError
		if errors.As(err, &decodeErr) {
			return Result{Kind: ProviderError, Reason: decodeErr.Error()}
		}
		p.logger.Warn("provider capture failed", zap.Error(err))
		return Result{Kind: Unavailable}
	}

	switch capture.Status {
	case "AUTHORIZED", "COMPLETED":
		return Result{
			Kind:       Authorized,
			Amount:     capture.Amount,
			Currency:   capture.Currency,
			PayerName:  capture.Payer.Name,
			PayerEmail: capture.Payer.Email,
		}
	case "DECLINED":
		return Result{Kind: Declined, Reason: capture.Reason}
	case "CANCELED":
		return Result{Kind: Canceled}
	default:
		return Result{Kind: ProviderError, Reason: fmt.Sprintf("unexpected capture status %q", capture.Status)}
	}
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return fmt.Sprintf("decode capture response: %v", e.err) }
func (e *decodeError) Unwrap() error { return e.err }

func (p *HTTPProvider) capture(ctx context.Context, amount float64, currency string) (*captureResponse, error) {
	body, err := json.Marshal(captureRequest{Amount: amount, Currency: currency})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var capture captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&capture); err != nil {
		return nil, &decodeError{err: err}
	}
	return &capture, nil
}
