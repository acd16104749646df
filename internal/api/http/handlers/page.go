package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-admin/internal/auth"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/flash"
)

// Layout is the template every page is rendered into.
const Layout = "layout"

// PageData builds the binding shared by every page: title, pending flash
// messages and the signed-in identity. data is merged on top.
func PageData(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	binding := fiber.Map{
		"Title":    title,
		"Flashes":  flash.FromContext(c),
		"SignedIn": false,
		"Identity": domain.Identity{},
	}
	if session, ok := auth.SessionFromContext(c); ok {
		if identity, ok := session.Identity(); ok {
			binding["SignedIn"] = true
			binding["Identity"] = identity
		}
	}
	for key, value := range data {
		binding[key] = value
	}
	return binding
}

func render(c *fiber.Ctx, status int, view, title string, data fiber.Map) error {
	return c.Status(status).Render(view, PageData(c, title, data), Layout)
}
