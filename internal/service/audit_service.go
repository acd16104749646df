package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/message-admin/internal/events"
	"github.com/spec-kit/message-admin/internal/observability"
)

// AuditService records session lifecycle events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventLoggedOut, a.handleLoggedOut)
	a.dispatcher.Subscribe(events.EventTokenDiscarded, a.handleTokenDiscarded)
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	a.logger.Info("LoginSucceeded", a.fields(event)...)
	a.metrics.RecordSessionEvent(string(event.Type))
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	a.logger.Info("LoginFailed", append(a.fields(event), zap.Any("payload", event.Payload))...)
	a.metrics.RecordSessionEvent(string(event.Type))
	return nil
}

func (a *AuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info("LoggedOut", a.fields(event)...)
	a.metrics.RecordSessionEvent(string(event.Type))
	return nil
}

func (a *AuditService) handleTokenDiscarded(_ context.Context, event events.Event) error {
	a.logger.Warn("TokenDiscarded", append(a.fields(event), zap.Any("payload", event.Payload))...)
	a.metrics.RecordSessionEvent(string(event.Type))
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("email", event.Email),
		zap.String("role", string(event.Role)),
		zap.Time("at", event.Timestamp),
	}
}
