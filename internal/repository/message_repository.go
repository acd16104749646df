package repository

import (
	"context"
	"net/url"

	"github.com/spec-kit/message-admin/internal/backend"
	"github.com/spec-kit/message-admin/internal/domain"
)

const messagesPath = "/api/message"

// MessageRepository defines backend access for messages.
type MessageRepository interface {
	List(ctx context.Context, categoryID string) ([]domain.Message, error)
	Create(ctx context.Context, categoryID, text string) error
}

type messageRepository struct {
	api Requester
}

// NewMessageRepository returns a backend-backed implementation.
func NewMessageRepository(api Requester) MessageRepository {
	return &messageRepository{api: api}
}

// List returns every message, or only those of categoryID when it is set.
func (r *messageRepository) List(ctx context.Context, categoryID string) ([]domain.Message, error) {
	path := messagesPath
	if categoryID != "" {
		path += "?" + url.Values{"category_id": {categoryID}}.Encode()
	}

	var messages []domain.Message
	if err := r.api.Do(ctx, path, backend.RequestOptions{}, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Create(ctx context.Context, categoryID, text string) error {
	return postJSON(ctx, r.api, messagesPath, map[string]string{
		"category_id":  categoryID,
		"message_text": text,
	})
}
