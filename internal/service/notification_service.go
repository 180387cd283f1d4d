package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/service-desk/internal/config"
	"github.com/spec-kit/service-desk/internal/events"
)

// Publisher sends serialized events to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService announces request lifecycle events: structured log lines
// plus a publish on a Redis channel for anything listening (ops dashboards,
// chat bridges).
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	publisher  Publisher
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, publisher Publisher, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		publisher:  publisher,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to all request events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventRequestCreated,
		events.EventRequestTaken,
		events.EventRequestCompleted,
		events.EventRequestPaid,
		events.EventRequestAdjusted,
	} {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.Int64("request_id", event.RequestID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload),
	)
	if !n.cfg.Enabled || n.publisher == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := n.publisher.Publish(ctx, n.cfg.Channel, body); err != nil {
		n.logger.Warn("notification publish failed", zap.Error(err))
	}
	return nil
}
