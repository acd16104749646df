package repository

import (
	"context"

	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
)

const categoriesPath = "/api/categories"

// CategoryRepository defines backend access for message categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) error
}

type categoryRepository struct {
	api Requester
}

// NewCategoryRepository returns a backend-backed implementation.
func NewCategoryRepository(api Requester) CategoryRepository {
	return &categoryRepository{api: api}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.api.Do(ctx, categoriesPath, backend.RequestOptions{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, name string) error {
	return postJSON(ctx, r.api, categoriesPath, map[string]string{"name": name})
}
