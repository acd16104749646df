package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-admin/internal/api/dto"
	"github.com/spec-kit/message-admin/internal/auth"
	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/pkg/util"
)

var errNoSession = errors.New("session middleware not installed")

// AuthHandler serves the entry screens.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Home handles GET /. It sends the caller to its landing screen or to sign-in.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return auth.RenderLoading(c)
	}

	switch auth.Evaluate(session) {
	case auth.GuardAuthorized:
		identity, _ := session.Identity()
		return c.Redirect(identity.Role.LandingPath(), fiber.StatusSeeOther)
	case auth.GuardUnauthenticated:
		return c.Redirect(domain.LoginPath, fiber.StatusSeeOther)
	default:
		return auth.RenderLoading(c)
	}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if session, ok := auth.SessionFromContext(c); ok {
		if identity, ok := session.Identity(); ok {
			return c.Redirect(identity.Role.LandingPath(), fiber.StatusSeeOther)
		}
	}
	return render(c, http.StatusOK, "login", "Login", nil)
}

// Login handles POST /login. A successful login redirects to the landing
// screen of the returned role; a failure re-renders the form with the reason.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewInternalError(errNoSession)
	}

	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		return render(c, http.StatusBadRequest, "login", "Login", fiber.Map{
			"Error": "Email and password are required",
			"Email": form.Email,
		})
	}

	if err := session.Login(c.UserContext(), form.Email, form.Password); err != nil {
		message := backend.LoginFailedMessage
		var httpErr *backend.HTTPError
		if errors.As(err, &httpErr) {
			message = httpErr.Message
		}
		return render(c, http.StatusUnauthorized, "login", "Login", fiber.Map{
			"Error": message,
			"Email": form.Email,
		})
	}
	return nil
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return c.Redirect(domain.LoginPath, fiber.StatusSeeOther)
	}
	session.Logout()
	return nil
}
