package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-admin/internal/domain"
)

// GuardState is the outcome of evaluating a session against a route.
type GuardState int

const (
	GuardLoading GuardState = iota
	GuardUnauthenticated
	GuardForbidden
	GuardAuthorized
)

func (g GuardState) String() string {
	switch g {
	case GuardLoading:
		return "loading"
	case GuardUnauthenticated:
		return "unauthenticated"
	case GuardForbidden:
		return "forbidden"
	case GuardAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Evaluate classifies a session. An empty allowed set admits any signed-in role.
func Evaluate(view SessionView, allowed ...domain.Role) GuardState {
	if view == nil || view.Loading() {
		return GuardLoading
	}
	identity, ok := view.Identity()
	if !ok {
		return GuardUnauthenticated
	}
	if len(allowed) == 0 || slices.Contains(allowed, identity.Role) {
		return GuardAuthorized
	}
	return GuardForbidden
}

// Guard reports whether the protected screen may render. When it may not, at
// most one redirect is issued: to the login screen for anonymous callers, or to
// the caller's own landing screen when the role is not allowed. Nothing is
// issued while the session is loading.
func Guard(view SessionView, nav Navigator, allowed ...domain.Role) bool {
	switch Evaluate(view, allowed...) {
	case GuardAuthorized:
		return true
	case GuardUnauthenticated:
		nav.Navigate(domain.LoginPath)
	case GuardForbidden:
		identity, _ := view.Identity()
		nav.Navigate(identity.Role.LandingPath())
	}
	return false
}

const loadingPlaceholder = `<!doctype html><html><body><div class="spinner" role="status">Loading…</div></body></html>`

// RequireRole gates a route on the request session. Without roles any
// signed-in identity is admitted.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var view SessionView
		if session, ok := SessionFromContext(c); ok {
			view = session
		}

		nav := &redirectNavigator{c: c}
		if Guard(view, nav, allowed...) {
			return c.Next()
		}
		if nav.redirected {
			return nil
		}
		return RenderLoading(c)
	}
}

// RenderLoading writes the placeholder shown while a session is unresolved.
func RenderLoading(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(loadingPlaceholder)
}
