package auth

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// TokenCookieName is the cookie holding the bearer token.
	TokenCookieName = "auth_token"
	// DefaultTokenTTLDays is how long a token survives after login.
	DefaultTokenTTLDays = 7
)

// TokenStore persists the bearer token for a browser session.
// Implementations perform no validation.
type TokenStore interface {
	Get() (string, bool)
	Set(token string, ttlDays int)
	Clear()
}

func ttl(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// CookieTokenStore keeps the token in a site-wide cookie on the current request.
// Writes are reflected by Get for the remainder of the request.
type CookieTokenStore struct {
	c       *fiber.Ctx
	secure  bool
	now     func() time.Time
	written bool
	value   string
}

// NewCookieTokenStore binds a store to the request.
func NewCookieTokenStore(c *fiber.Ctx, secure bool) *CookieTokenStore {
	return &CookieTokenStore{c: c, secure: secure, now: time.Now}
}

// Get returns the token sent by the browser, or the one written during this request.
func (s *CookieTokenStore) Get() (string, bool) {
	if s.written {
		return s.value, s.value != ""
	}
	token := s.c.Cookies(TokenCookieName)
	return token, token != ""
}

// Set writes the token cookie expiring ttlDays from now.
func (s *CookieTokenStore) Set(token string, ttlDays int) {
	s.written, s.value = true, token
	s.c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(ttl(ttlDays)),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the token cookie.
func (s *CookieTokenStore) Clear() {
	s.written, s.value = true, ""
	s.c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  s.now().Add(-24 * time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// MemoryTokenStore is an in-process TokenStore honoring expiry.
type MemoryTokenStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryTokenStore returns an empty store using the wall clock.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{now: time.Now}
}

// WithClock replaces the clock used for expiry.
func (s *MemoryTokenStore) WithClock(now func() time.Time) *MemoryTokenStore {
	s.now = now
	return s
}

func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.now().Before(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

func (s *MemoryTokenStore) Set(token string, ttlDays int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = s.now().Add(ttl(ttlDays))
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// ExpiresAt reports when the current token lapses; zero when empty.
func (s *MemoryTokenStore) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}
