package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/textproto"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/config"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/observability"
)

const (
	// GenericErrorMessage is reported when a failed response carries no usable message.
	GenericErrorMessage = "Something went wrong"
	// LoginFailedMessage is reported when a failed login carries no usable message.
	LoginFailedMessage = "Login failed"

	loginPath = "/api/user/login"
)

// HTTPError is the only error callers of the backend see. Message is safe to
// show to the user; Err keeps the underlying cause for logs.
type HTTPError struct {
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// LoginError is an HTTPError raised by the credential exchange.
type LoginError struct {
	HTTPError
}

func (e *LoginError) Unwrap() error {
	return &e.HTTPError
}

func newLoginError(message string, cause error) *LoginError {
	return &LoginError{HTTPError: HTTPError{Message: message, Err: cause}}
}

// TokenSource yields the bearer token of the current session, if any.
type TokenSource interface {
	Get() (string, bool)
}

// RequestOptions shapes a single backend call. Headers are applied over the
// defaults, so a caller may replace Content-Type or Authorization explicitly.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// JSONBody encodes v for RequestOptions.Body.
func JSONBody(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Client talks to the backend API rooted at a configured base URL.
type Client struct {
	baseURL string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a client for the configured backend.
func NewClient(cfg config.APIConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, logger: logger, metrics: metrics}
}

// For returns a Fetcher that authenticates with tokens.
func (c *Client) For(tokens TokenSource) *Fetcher {
	return &Fetcher{client: c, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID        domain.ID `json:"id"`
		Email     string    `json:"email"`
		FirstName string    `json:"firstName"`
		Role      string    `json:"role"`
	} `json:"user"`
}

// Login posts credentials to the login endpoint. No Authorization header is sent.
func (c *Client) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return domain.LoginResult{}, newLoginError(LoginFailedMessage, err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	status, raw, err := c.send(ctx, fiber.MethodPost, loginPath, headers, body)
	if err != nil {
		return domain.LoginResult{}, newLoginError(LoginFailedMessage, err)
	}

	var payload loginResponse
	parseErr := json.Unmarshal(raw, &payload)

	if !isSuccess(status) {
		message := LoginFailedMessage
		if parseErr == nil && payload.Message != "" {
			message = payload.Message
		}
		return domain.LoginResult{}, newLoginError(message, nil)
	}
	if parseErr != nil {
		return domain.LoginResult{}, newLoginError(LoginFailedMessage, parseErr)
	}
	if payload.Token == "" {
		return domain.LoginResult{}, newLoginError(LoginFailedMessage, errors.New("login response without token"))
	}

	role, err := domain.ParseRole(payload.User.Role)
	if err != nil {
		return domain.LoginResult{}, newLoginError(LoginFailedMessage, err)
	}

	return domain.LoginResult{
		Token: payload.Token,
		User: domain.Identity{
			ID:          string(payload.User.ID),
			Email:       payload.User.Email,
			DisplayName: payload.User.FirstName,
			Role:        role,
		},
	}, nil
}

// send performs exactly one request. There is no retry and no timeout; a
// context that is already done stops the call before it is dispatched.
func (c *Client) send(ctx context.Context, method, path string, headers map[string]string, body []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		c.metrics.RecordBackendCall(method, "transport_error")
		return 0, nil, err
	}

	url := c.baseURL + path
	c.logger.Debug("backend request", zap.String("method", method), zap.String("url", url))

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(url)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if len(body) > 0 {
		req.SetBody(body)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		c.metrics.RecordBackendCall(method, "transport_error")
		return 0, nil, err
	}

	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.logger.Warn("backend unreachable", zap.String("method", method), zap.String("url", url), zap.Error(err))
		c.metrics.RecordBackendCall(method, "transport_error")
		return 0, nil, err
	}

	if isSuccess(status) {
		c.metrics.RecordBackendCall(method, "ok")
	} else {
		c.metrics.RecordBackendCall(method, "http_error")
		c.logger.Info("backend rejected request",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", status),
		)
	}
	return status, respBody, nil
}

// Fetcher issues authenticated calls on behalf of one session.
type Fetcher struct {
	client *Client
	tokens TokenSource
}

// Request sends a call and returns the JSON body verbatim. Every failure,
// including an unreachable backend, is reported as *HTTPError.
func (f *Fetcher) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = fiber.MethodGet
	}

	status, body, err := f.client.send(ctx, method, path, f.headers(opts.Headers), opts.Body)
	if err != nil {
		return nil, &HTTPError{Message: GenericErrorMessage, Err: err}
	}
	if !isSuccess(status) {
		return nil, &HTTPError{Message: errorMessage(body, GenericErrorMessage)}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		return nil, &HTTPError{Message: GenericErrorMessage, Err: errors.New("response body is not JSON")}
	}
	return json.RawMessage(body), nil
}

// Do is Request followed by decoding the body into out. A nil out discards the body.
func (f *Fetcher) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	raw, err := f.Request(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &HTTPError{Message: GenericErrorMessage, Err: err}
	}
	return nil
}

func (f *Fetcher) headers(overrides map[string]string) map[string]string {
	headers := map[string]string{"Content-Type": "application/json"}
	if f.tokens != nil {
		if token, ok := f.tokens.Get(); ok {
			headers["Authorization"] = "Bearer " + token
		}
	}
	for key, value := range overrides {
		headers[textproto.CanonicalMIMEHeaderKey(key)] = value
	}
	return headers
}

func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return fallback
	}
	return payload.Message
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
