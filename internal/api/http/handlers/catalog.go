package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/auth"
	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/flash"
	"github.com/spec-kit/message-admin/internal/service"
	"github.com/spec-kit/message-admin/pkg/util"
)

// catalogFor builds a catalog service authenticated with the request's token.
func catalogFor(c *fiber.Ctx, api *backend.Client) *service.CatalogService {
	var tokens backend.TokenSource
	if store, ok := auth.TokenStoreFromContext(c); ok {
		tokens = store
	}
	return service.NewCatalogServiceFor(api.For(tokens))
}

// flashOutcome queues the result of a create action. Validation failures show
// their own message; anything else shows failure.
func flashOutcome(c *fiber.Ctx, logger *zap.Logger, err error, success, failure string) {
	if err == nil {
		flash.Add(c, flash.Success(success))
		return
	}

	var domainErr *util.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "VALIDATION_FAILED" {
		flash.Add(c, flash.Error(domainErr.Message))
		return
	}
	logger.Warn(failure, zap.String("path", c.Path()), zap.Error(err))
	flash.Add(c, flash.Error(failure))
}

func categoryNames(categories []domain.Category) map[domain.ID]string {
	names := make(map[domain.ID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names
}
