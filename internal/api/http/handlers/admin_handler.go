package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/api/dto"
	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
)

const (
	categoriesPage = "/admin/categories"
	messagesPage   = "/admin/message-categories"
)

// AdminHandler serves the ADMIN screens.
type AdminHandler struct {
	api    *backend.Client
	logger *zap.Logger
}

// NewAdminHandler constructs handler.
func NewAdminHandler(api *backend.Client, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{api: api, logger: logger}
}

// Dashboard handles GET /admin and GET /admin-dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := catalogFor(c, h.api).Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "admin_dashboard", "Dashboard", fiber.Map{"Dashboard": dashboard})
}

// Categories handles GET /admin/categories.
func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	categories, err := catalogFor(c, h.api).Categories(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "categories", "Categories", fiber.Map{"Categories": categories})
}

// CreateCategory handles POST /admin/categories.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var form dto.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := catalogFor(c, h.api).CreateCategory(c.UserContext(), form.Name)
	flashOutcome(c, h.logger, err, "Category created successfully!", "Failed to create category")
	return c.Redirect(categoriesPage, fiber.StatusSeeOther)
}

// Messages handles GET /admin/message-categories.
func (h *AdminHandler) Messages(c *fiber.Ctx) error {
	var filter dto.MessageFilter
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query")
	}

	catalog := catalogFor(c, h.api)
	categories, err := catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}
	messages, err := catalog.Messages(c.UserContext(), filter.CategoryID)
	if err != nil {
		return err
	}

	return render(c, http.StatusOK, "messages", "Messages", fiber.Map{
		"Categories":       categories,
		"CategoryNames":    categoryNames(categories),
		"Messages":         messages,
		"SelectedCategory": domain.ID(filter.CategoryID),
	})
}

// CreateMessage handles POST /admin/message-categories.
func (h *AdminHandler) CreateMessage(c *fiber.Ctx) error {
	var form dto.MessageForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := catalogFor(c, h.api).CreateMessage(c.UserContext(), form.CategoryID, form.Text)
	flashOutcome(c, h.logger, err, "Message created successfully!", "Failed to create message")
	return c.Redirect(messagesPage, fiber.StatusSeeOther)
}
