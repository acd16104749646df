package repository

import (
	"context"

	"github.com/spec-kit/message-admin/internal/backend"
)

// Requester performs authenticated backend calls. *backend.Fetcher implements it.
type Requester interface {
	Do(ctx context.Context, path string, opts backend.RequestOptions, out any) error
}

func postJSON(ctx context.Context, api Requester, path string, payload any) error {
	body, err := backend.JSONBody(payload)
	if err != nil {
		return err
	}
	return api.Do(ctx, path, backend.RequestOptions{Method: "POST", Body: body}, nil)
}
