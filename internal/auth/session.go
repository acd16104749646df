package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/events"
)

// LoginClient exchanges credentials for a token and identity.
type LoginClient interface {
	Login(ctx context.Context, email, password string) (domain.LoginResult, error)
}

// Navigator moves the caller to another screen.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// SessionView is the read side of a session consulted by guards.
type SessionView interface {
	Identity() (domain.Identity, bool)
	Loading() bool
}

// SessionDeps bundles what a Session needs.
type SessionDeps struct {
	Tokens       TokenStore
	Client       LoginClient
	Navigator    Navigator
	Events       events.Dispatcher
	Logger       *zap.Logger
	TokenTTLDays int
}

// Session holds the authentication state of one browser session for the
// duration of a page load. It starts out loading; Bootstrap resolves the
// stored token and clears the flag exactly once.
type Session struct {
	tokens  TokenStore
	client  LoginClient
	nav     Navigator
	events  events.Dispatcher
	logger  *zap.Logger
	ttlDays int
	boot    sync.Once

	mu       sync.Mutex
	identity *domain.Identity
	loading  bool
}

// NewSession constructs a session in the loading state.
func NewSession(deps SessionDeps) *Session {
	s := &Session{
		tokens:  deps.Tokens,
		client:  deps.Client,
		nav:     deps.Navigator,
		events:  deps.Events,
		logger:  deps.Logger,
		ttlDays: deps.TokenTTLDays,
		loading: true,
	}
	if s.tokens == nil {
		s.tokens = NewMemoryTokenStore()
	}
	if s.nav == nil {
		s.nav = NavigatorFunc(func(string) {})
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.ttlDays <= 0 {
		s.ttlDays = DefaultTokenTTLDays
	}
	return s
}

// Bootstrap resolves the stored token into an identity. A token that fails to
// decode is removed so it is not retried on the next page load. Later calls are no-ops.
func (s *Session) Bootstrap() {
	s.boot.Do(func() {
		defer s.setLoading(false)

		token, ok := s.tokens.Get()
		if !ok {
			return
		}

		identity, err := Decode(token)
		if err != nil {
			s.tokens.Clear()
			s.logger.Warn("discarding undecodable token", zap.Error(err))
			s.publish(context.Background(), events.New(events.EventTokenDiscarded, "", "",
				events.TokenDiscardedPayload{Reason: err.Error()}))
			return
		}

		s.mu.Lock()
		s.identity = &identity
		s.mu.Unlock()
	})
}

// Login exchanges credentials with the backend. On success the token is
// stored, the identity replaced and the caller sent to its landing screen.
// On failure the error is returned and the session is left untouched.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", zap.String("email", email), zap.Error(err))
		s.publish(ctx, events.New(events.EventLoginFailed, email, "",
			events.LoginFailedPayload{Reason: err.Error()}))
		return err
	}

	s.tokens.Set(result.Token, s.ttlDays)
	identity := result.User

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	s.logger.Info("login succeeded", zap.String("email", identity.Email), zap.String("role", string(identity.Role)))
	s.publish(ctx, events.New(events.EventLoginSucceeded, identity.Email, identity.Role, nil))
	s.nav.Navigate(identity.Role.LandingPath())
	return nil
}

// Logout forgets the token and identity and returns to the login screen.
func (s *Session) Logout() {
	s.tokens.Clear()

	s.mu.Lock()
	prev := s.identity
	s.identity = nil
	s.mu.Unlock()

	event := events.New(events.EventLoggedOut, "", "", nil)
	if prev != nil {
		event.Email, event.Role = prev.Email, prev.Role
	}
	s.publish(context.Background(), event)
	s.nav.Navigate(domain.LoginPath)
}

// Identity returns the signed-in identity, if any.
func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Loading reports whether the session is still resolving.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("session event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
