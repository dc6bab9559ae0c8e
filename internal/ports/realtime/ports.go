package realtime

import "parlour.service/internal/core/model"

// Broadcaster is the output port for fanning a freshly created punch event
// out to connected dashboard clients. Delivery is best-effort and
// at-most-once per subscriber; the service hands an event over exactly
// once, after the store write is durable, and never blocks on it.
type Broadcaster interface {
	Publish(event model.EnrichedAttendanceEvent)
}
