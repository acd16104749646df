package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/config"
	"github.com/spec-kit/message-admin/internal/events"
)

const (
	sessionKey    = "auth_session"
	tokenStoreKey = "auth_token_store"
)

// SessionMiddleware builds and bootstraps the Session of every request.
type SessionMiddleware struct {
	client       LoginClient
	events       events.Dispatcher
	logger       *zap.Logger
	ttlDays      int
	secureCookie bool
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(client LoginClient, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuthConfig) *SessionMiddleware {
	return &SessionMiddleware{
		client:       client,
		events:       dispatcher,
		logger:       logger,
		ttlDays:      cfg.TokenTTLDays,
		secureCookie: cfg.CookieSecure,
	}
}

// Handle attaches a bootstrapped session and its token store to the request.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	tokens := NewCookieTokenStore(c, m.secureCookie)
	session := NewSession(SessionDeps{
		Tokens:       tokens,
		Client:       m.client,
		Navigator:    &redirectNavigator{c: c},
		Events:       m.events,
		Logger:       m.logger,
		TokenTTLDays: m.ttlDays,
	})

	c.Locals(tokenStoreKey, tokens)
	c.Locals(sessionKey, session)
	session.Bootstrap()
	return c.Next()
}

// SessionFromContext retrieves the request session.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}

// TokenStoreFromContext retrieves the request token store.
func TokenStoreFromContext(c *fiber.Ctx) (TokenStore, bool) {
	val := c.Locals(tokenStoreKey)
	if val == nil {
		return nil, false
	}
	store, ok := val.(TokenStore)
	return store, ok
}

// redirectNavigator turns navigation into a 303 redirect.
type redirectNavigator struct {
	c          *fiber.Ctx
	redirected bool
}

func (n *redirectNavigator) Navigate(path string) {
	n.redirected = true
	_ = n.c.Redirect(path, fiber.StatusSeeOther)
}
