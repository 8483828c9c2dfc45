package telemetry

import (
	"go.uber.org/zap"

	"guidepost/internal/events"
)

// BindBus records every business-state change notification as a telemetry
// event. Recording failures are logged, never propagated to the publisher.
func BindBus(bus *events.Bus, repo Repository, log *zap.Logger) {
	if bus == nil || repo == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	bus.Subscribe(func(e events.Event) {
		meta := EventMetadata{"kind": string(e.Kind)}
		if e.Payload != "" {
			meta["entity"] = e.Payload
		}
		if err := repo.RecordEvent(EventStateChanged, meta); err != nil {
			log.Debug("record telemetry event", zap.Error(err))
		}
	})
}
