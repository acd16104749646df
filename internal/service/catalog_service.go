package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/repository"
	"github.com/spec-kit/message-admin/pkg/util"
)

// CatalogService coordinates category and message workflows for one session.
type CatalogService struct {
	categories repository.CategoryRepository
	messages   repository.MessageRepository
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CategoryRepo repository.CategoryRepository
	MessageRepo  repository.MessageRepository
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories: deps.CategoryRepo,
		messages:   deps.MessageRepo,
	}
}

// NewCatalogServiceFor wires backend repositories over api.
func NewCatalogServiceFor(api repository.Requester) *CatalogService {
	return NewCatalogService(CatalogDependencies{
		CategoryRepo: repository.NewCategoryRepository(api),
		MessageRepo:  repository.NewMessageRepository(api),
	})
}

// Dashboard counts categories and messages. Both lists are fetched concurrently;
// the first failure cancels the other call.
func (s *CatalogService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	var dashboard domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.categories.List(gctx)
		if err != nil {
			return err
		}
		dashboard.CategoryCount = len(categories)
		return nil
	})
	g.Go(func() error {
		messages, err := s.messages.List(gctx, "")
		if err != nil {
			return err
		}
		dashboard.MessageCount = len(messages)
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}
	return dashboard, nil
}

// Categories lists every category.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory validates and creates a category.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return util.NewValidationError("Category name is required", map[string]any{"field": "name"})
	}
	return s.categories.Create(ctx, name)
}

// Messages lists messages, filtered to categoryID when it is set.
func (s *CatalogService) Messages(ctx context.Context, categoryID string) ([]domain.Message, error) {
	return s.messages.List(ctx, strings.TrimSpace(categoryID))
}

// CreateMessage validates and posts a message into a category.
func (s *CatalogService) CreateMessage(ctx context.Context, categoryID, text string) error {
	categoryID = strings.TrimSpace(categoryID)
	text = strings.TrimSpace(text)

	missing := []string{}
	if categoryID == "" {
		missing = append(missing, "category_id")
	}
	if text == "" {
		missing = append(missing, "message_text")
	}
	if len(missing) > 0 {
		return util.NewValidationError("Category and message text are required", map[string]any{"fields": missing})
	}
	return s.messages.Create(ctx, categoryID, text)
}
