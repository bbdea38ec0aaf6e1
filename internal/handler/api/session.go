package api

import (
	"sync"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sessionHeader carries the cart session ID. The server issues one on
// first use and echoes it back on every response.
const sessionHeader = "X-Session-ID"

// sessionCart is one session's cart plus the mutex that serializes
// writes to it. The cart engine is pure; this is the single place where
// concurrent requests against the same cart get ordered.
type sessionCart struct {
	mu   sync.Mutex
	cart domain.Cart
}

// SessionCarts is an in-memory registry of session carts.
type SessionCarts struct {
	mu    sync.Mutex
	carts map[string]*sessionCart
}

// NewSessionCarts creates an empty registry.
func NewSessionCarts() *SessionCarts {
	return &SessionCarts{carts: make(map[string]*sessionCart)}
}

func (s *SessionCarts) get(sessionID string) *sessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.carts[sessionID]
	if !ok {
		sc = &sessionCart{}
		s.carts[sessionID] = sc
	}
	return sc
}

// drop discards a session's cart, after a successful checkout.
func (s *SessionCarts) drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// withCart runs fn while holding the session's cart lock. fn returns
// the cart to store back; on error the stored cart is left untouched.
func (h *Handler) withCart(c echo.Context, fn func(current domain.Cart) (domain.Cart, error)) error {
	sessionID := c.Request().Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Response().Header().Set(sessionHeader, sessionID)

	sc := h.sessions.get(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	next, err := fn(sc.cart)
	if err != nil {
		return err
	}
	sc.cart = next
	return nil
}
