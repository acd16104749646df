package http

import (
	"bytes"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/message-admin/internal/domain"
)

func TestViewsWrapPageInLayout(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)
	require.NoError(t, views.Load())

	var buf bytes.Buffer
	err = views.Render(&buf, "categories", fiber.Map{
		"Title":    "Categories",
		"SignedIn": true,
		"Identity": domain.Identity{DisplayName: "Ada", Role: domain.RoleAdmin},
		"Categories": []domain.Category{
			{ID: "1", Name: "<Alerts>", CreatedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)},
		},
	}, "layout")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Categories · Message Admin</title>")
	assert.Contains(t, out, "Ada (ADMIN)")
	assert.Contains(t, out, "<td>&lt;Alerts&gt;</td>")
	assert.Contains(t, out, "<td>2026-03-04 05:06:07</td>")
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "", formatDateTime(time.Time{}))
	assert.Equal(t, "2026-01-02 03:04:05", formatDateTime(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}
