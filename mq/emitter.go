package mq

import (
	"context"
	"encoding/json"
	"log"

	"seaops/rdx"
)

// Event is an operational notification published to subscribed consoles.
type Event struct {
	Kind     string `json:"kind"`     // e.g. "trip.updated", "schedule.generated", "report.closed"
	EntityID string `json:"entityId"` // document the event refers to
	Date     string `json:"date,omitempty"`
	ActorID  string `json:"actorId,omitempty"`
}

const channel = "ops-events"

// Emit publishes an event to Redis; failures are logged, never propagated.
func Emit(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] marshal failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] publish failed: %v", err)
	}
}

// StartEventLogger consumes the event channel and writes an audit line per
// event. Runs as a background worker.
func StartEventLogger() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[EventLogger] listening for ops events")

	for msg := range ch {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[EventLogger] bad payload: %v", err)
			continue
		}
		log.Printf("[EventLogger] %s entity=%s date=%s actor=%s", ev.Kind, ev.EntityID, ev.Date, ev.ActorID)
	}
}
