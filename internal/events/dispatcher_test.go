package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/message-admin/internal/domain"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventLoggedOut, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Email)
		return errors.New("boom")
	})
	d.Subscribe(EventLoggedOut, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Email)
		return nil
	})
	d.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	err := d.Publish(context.Background(), New(EventLoggedOut, "a@b.com", domain.RoleStaff, nil))
	require.Error(t, err)
	assert.Equal(t, []string{"first:a@b.com", "second:a@b.com"}, got)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventLoginFailed, "x@y.z", "", LoginFailedPayload{Reason: "Invalid credentials"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventLoginFailed, e.Type)
}
