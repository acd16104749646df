package flash

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cookieName    = "flash_id"
	pendingKey    = "flash_pending"
	middlewareKey = "flash_middleware"
)

// Middleware loads the notices addressed to a browser and lets handlers queue new ones.
type Middleware struct {
	store  Store
	logger *zap.Logger
	secure bool
}

// NewMiddleware constructs middleware over store.
func NewMiddleware(store Store, logger *zap.Logger, secureCookie bool) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{store: store, logger: logger, secure: secureCookie}
}

// Handle pops pending notices for this browser into the request.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	c.Locals(middlewareKey, m)
	if id := cookieID(c); id != "" {
		flashes, err := m.store.Pop(c.UserContext(), id)
		if err != nil {
			m.logger.Warn("unable to load flash messages", zap.Error(err))
		}
		c.Locals(pendingKey, flashes)
	}
	return c.Next()
}

// Add queues f for the next page this browser renders.
func Add(c *fiber.Ctx, f Flash) {
	m, ok := c.Locals(middlewareKey).(*Middleware)
	if !ok {
		return
	}

	id := cookieID(c)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   m.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	if err := m.store.Push(c.UserContext(), id, f); err != nil {
		m.logger.Warn("unable to store flash message", zap.Error(err))
	}
}

// FromContext returns the notices loaded for this request.
func FromContext(c *fiber.Ctx) []Flash {
	flashes, _ := c.Locals(pendingKey).([]Flash)
	return flashes
}

// cookieID copies the flash cookie out of fiber's request buffer, which is
// reused once the request ends.
func cookieID(c *fiber.Ctx) string {
	return utils.CopyString(c.Cookies(cookieName))
}
