package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/config"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/events"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

type fakeLoginClient struct {
	result domain.LoginResult
	err    error
	calls  int
}

func (f *fakeLoginClient) Login(_ context.Context, _, _ string) (domain.LoginResult, error) {
	f.calls++
	return f.result, f.err
}

func fixedClock() func() time.Time {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestBootstrapWithoutToken(t *testing.T) {
	s := NewSession(SessionDeps{Tokens: NewMemoryTokenStore()})
	assert.True(t, s.Loading())

	s.Bootstrap()

	assert.False(t, s.Loading())
	_, ok := s.Identity()
	assert.False(t, ok)
}

func TestBootstrapValidTokenPerRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleStaff} {
		t.Run(string(role), func(t *testing.T) {
			store := NewMemoryTokenStore()
			token := signToken(t, jwt.MapClaims{
				"id":    "42",
				"email": "op@example.com",
				"name":  "Op",
				"role":  string(role),
				"exp":   time.Now().Add(time.Hour).Unix(),
			})
			store.Set(token, DefaultTokenTTLDays)

			s := NewSession(SessionDeps{Tokens: store})
			s.Bootstrap()

			assert.False(t, s.Loading())
			identity, ok := s.Identity()
			require.True(t, ok)
			assert.Equal(t, role, identity.Role)
			assert.Equal(t, "42", identity.ID)
			assert.Equal(t, "Op", identity.DisplayName)

			got, ok := store.Get()
			assert.True(t, ok)
			assert.Equal(t, token, got)
		})
	}
}

func TestBootstrapMalformedTokenClearsStore(t *testing.T) {
	malformed := map[string]string{
		"garbage":       "not-a-token",
		"two segments":  "abc.def",
		"bad base64":    "***.***.***",
		"payload array": "eyJhbGciOiJIUzI1NiJ9.WzEsMl0.sig",
		"unknown role":  signToken(t, jwt.MapClaims{"id": "1", "role": "USER"}),
		"missing role":  signToken(t, jwt.MapClaims{"id": "1", "email": "a@b.com"}),
	}

	for name, token := range malformed {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryTokenStore()
			store.Set(token, DefaultTokenTTLDays)

			dispatcher := events.NewInMemoryDispatcher()
			var discarded int
			dispatcher.Subscribe(events.EventTokenDiscarded, func(context.Context, events.Event) error {
				discarded++
				return nil
			})

			s := NewSession(SessionDeps{Tokens: store, Events: dispatcher})
			s.Bootstrap()

			assert.False(t, s.Loading())
			_, ok := s.Identity()
			assert.False(t, ok)
			_, ok = store.Get()
			assert.False(t, ok, "undecodable token must be removed")
			assert.Equal(t, 1, discarded)
		})
	}
}

func TestBootstrapExpiredTokenStillDecodes(t *testing.T) {
	store := NewMemoryTokenStore()
	store.Set(signToken(t, jwt.MapClaims{
		"id":   "1",
		"role": "STAFF",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}), DefaultTokenTTLDays)

	s := NewSession(SessionDeps{Tokens: store})
	s.Bootstrap()

	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, domain.RoleStaff, identity.Role)
}

func TestBootstrapRunsOnce(t *testing.T) {
	store := NewMemoryTokenStore()
	s := NewSession(SessionDeps{Tokens: store})
	s.Bootstrap()

	store.Set(signToken(t, jwt.MapClaims{"id": "1", "role": "ADMIN"}), DefaultTokenTTLDays)
	s.Bootstrap()

	_, ok := s.Identity()
	assert.False(t, ok)
}

func TestLoginSuccessStoresTokenAndNavigates(t *testing.T) {
	clock := fixedClock()
	store := NewMemoryTokenStore().WithClock(clock)
	nav := &recordingNavigator{}
	client := &fakeLoginClient{result: domain.LoginResult{
		Token: "abc",
		User:  domain.Identity{ID: "1", Email: "a@b.com", DisplayName: "A", Role: domain.RoleAdmin},
	}}

	s := NewSession(SessionDeps{Tokens: store, Client: client, Navigator: nav})
	s.Bootstrap()

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, clock().Add(7*24*time.Hour), store.ExpiresAt())

	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, domain.Identity{ID: "1", Email: "a@b.com", DisplayName: "A", Role: domain.RoleAdmin}, identity)
	assert.Equal(t, []string{"/admin"}, nav.paths)
	assert.False(t, s.Loading())
}

func TestLoginStaffLandsOnStaffScreen(t *testing.T) {
	nav := &recordingNavigator{}
	client := &fakeLoginClient{result: domain.LoginResult{
		Token: "t",
		User:  domain.Identity{ID: "2", Role: domain.RoleStaff},
	}}

	s := NewSession(SessionDeps{Client: client, Navigator: nav})
	require.NoError(t, s.Login(context.Background(), "s@b.com", "pw"))
	assert.Equal(t, []string{"/staff"}, nav.paths)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	store := NewMemoryTokenStore()
	nav := &recordingNavigator{}
	loginErr := errors.New("Invalid credentials")
	client := &fakeLoginClient{err: loginErr}

	s := NewSession(SessionDeps{Tokens: store, Client: client, Navigator: nav})
	s.Bootstrap()

	err := s.Login(context.Background(), "a@b.com", "bad")
	assert.ErrorIs(t, err, loginErr)

	_, ok := s.Identity()
	assert.False(t, ok)
	_, ok = store.Get()
	assert.False(t, ok)
	assert.Empty(t, nav.paths)
	assert.False(t, s.Loading(), "loading is reset on failure")
}

func TestLoginFailureKeepsPreviousIdentity(t *testing.T) {
	store := NewMemoryTokenStore()
	previous := signToken(t, jwt.MapClaims{"id": "9", "role": "STAFF"})
	store.Set(previous, DefaultTokenTTLDays)

	s := NewSession(SessionDeps{Tokens: store, Client: &fakeLoginClient{err: errors.New("nope")}})
	s.Bootstrap()

	require.Error(t, s.Login(context.Background(), "x@y.z", "bad"))

	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "9", identity.ID)
	token, _ := store.Get()
	assert.Equal(t, previous, token)
}

func TestLoginAgainstBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	nav := &recordingNavigator{}
	client := backend.NewClient(config.APIConfig{BaseURL: srv.URL}, nil, nil)

	s := NewSession(SessionDeps{Tokens: store, Client: client, Navigator: nav})
	s.Bootstrap()

	err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	var loginErr *backend.LoginError
	assert.True(t, errors.As(err, &loginErr))

	_, ok := s.Identity()
	assert.False(t, ok)
	_, ok = store.Get()
	assert.False(t, ok)
	assert.Empty(t, nav.paths)
}

func TestLoginAgainstBackendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","user":{"id":"1","email":"a@b.com","firstName":"A","role":"ADMIN"}}`))
	}))
	defer srv.Close()

	clock := fixedClock()
	store := NewMemoryTokenStore().WithClock(clock)
	nav := &recordingNavigator{}
	client := backend.NewClient(config.APIConfig{BaseURL: srv.URL}, nil, nil)

	s := NewSession(SessionDeps{Tokens: store, Client: client, Navigator: nav})
	s.Bootstrap()
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	token, _ := store.Get()
	assert.Equal(t, "abc", token)
	assert.Equal(t, clock().AddDate(0, 0, 7), store.ExpiresAt())
	identity, _ := s.Identity()
	assert.Equal(t, domain.RoleAdmin, identity.Role)
	assert.Equal(t, "A", identity.DisplayName)
	assert.Equal(t, []string{"/admin"}, nav.paths)
}

func TestLogoutClearsEverything(t *testing.T) {
	cases := map[string]func(t *testing.T, store *MemoryTokenStore){
		"signed in": func(t *testing.T, store *MemoryTokenStore) {
			store.Set(signToken(t, jwt.MapClaims{"id": "1", "role": "ADMIN"}), DefaultTokenTTLDays)
		},
		"anonymous": func(*testing.T, *MemoryTokenStore) {},
		"broken token": func(_ *testing.T, store *MemoryTokenStore) {
			store.Set("garbage", DefaultTokenTTLDays)
		},
	}

	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryTokenStore()
			seed(t, store)
			nav := &recordingNavigator{}

			s := NewSession(SessionDeps{Tokens: store, Navigator: nav})
			s.Bootstrap()
			s.Logout()

			_, ok := s.Identity()
			assert.False(t, ok)
			_, ok = store.Get()
			assert.False(t, ok)
			assert.Equal(t, []string{"/login"}, nav.paths)
		})
	}
}

func TestSessionEventsArePublished(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	record := func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventLoginFailed, record)
	dispatcher.Subscribe(events.EventLoginSucceeded, record)
	dispatcher.Subscribe(events.EventLoggedOut, record)

	client := &fakeLoginClient{err: errors.New("bad")}
	s := NewSession(SessionDeps{Client: client, Events: dispatcher})
	s.Bootstrap()

	_ = s.Login(context.Background(), "a@b.com", "x")
	client.err = nil
	client.result = domain.LoginResult{Token: "t", User: domain.Identity{Role: domain.RoleStaff}}
	require.NoError(t, s.Login(context.Background(), "a@b.com", "y"))
	s.Logout()

	assert.Equal(t, []events.EventType{events.EventLoginFailed, events.EventLoginSucceeded, events.EventLoggedOut}, seen)
}

func TestDecode(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"id": 7, "email": "a@b.com", "name": "Ann", "role": "ADMIN"})

	identity, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "7", Email: "a@b.com", DisplayName: "Ann", Role: domain.RoleAdmin}, identity)

	_, err = Decode("  ")
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "empty token", decodeErr.Reason)
}
