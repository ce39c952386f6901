package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/events"
	"github.com/CaioVictor3/Bus-Manager-App/internal/observability"
)

// auditedEvents lists every store-change event the worker observes.
var auditedEvents = []events.EventType{
	events.EventSessionChanged,
	events.EventStudentAdded,
	events.EventStudentUpdated,
	events.EventStudentDeleted,
	events.EventPresenceToggled,
	events.EventRouteSettingsSet,
}

// StartAuditWorker subscribes to all store-change events and records
// them as logs and counters. Observability side channel only: it never
// affects store semantics.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			metrics.RecordStoreOp(string(event.Type))
			logger.Info("store event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
