package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopblue/storefront/internal/domain"
)

// Store is the mock auth layer: Login simulates a credential round trip
// with a short delay, then mints a bearer token mapped to a session-local
// user. There is no real credential checking anywhere.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User

	loginDelay time.Duration
}

func NewStore(loginDelay time.Duration) *Store {
	return &Store{
		users:      make(map[string]domain.User),
		loginDelay: loginDelay,
	}
}

// Login waits out the simulated delay, honoring cancellation, and returns
// the token plus the minted user.
func (s *Store) Login(ctx context.Context, name, email string) (string, domain.User, error) {
	timer := time.NewTimer(s.loginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", domain.User{}, ctx.Err()
	}

	if name == "" {
		name = deriveName(email)
	}
	user := domain.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.users[token] = user
	s.mu.Unlock()

	return token, user, nil
}

// User resolves a bearer token to its user.
func (s *Store) User(token string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	return u, ok
}

// Logout drops the token; unknown tokens are a no-op.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, token)
}

func deriveName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Guest"
}
