package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-admin/internal/api/dto"
	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
)

// StaffHandler serves the STAFF message browser.
type StaffHandler struct {
	api *backend.Client
}

// NewStaffHandler constructs handler.
func NewStaffHandler(api *backend.Client) *StaffHandler {
	return &StaffHandler{api: api}
}

// Messages handles GET /staff. Messages are only fetched once a category is selected.
func (h *StaffHandler) Messages(c *fiber.Ctx) error {
	var filter dto.MessageFilter
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query")
	}

	catalog := catalogFor(c, h.api)
	categories, err := catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}

	var messages []domain.Message
	if filter.CategoryID != "" {
		messages, err = catalog.Messages(c.UserContext(), filter.CategoryID)
		if err != nil {
			return err
		}
	}

	return render(c, http.StatusOK, "staff", "Messages", fiber.Map{
		"Categories":       categories,
		"CategoryNames":    categoryNames(categories),
		"Messages":         messages,
		"SelectedCategory": domain.ID(filter.CategoryID),
	})
}
