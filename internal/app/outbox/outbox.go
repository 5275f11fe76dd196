package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/shared/events"
)

// Document is an event staged for publication.
type Document struct {
	ID         string
	Name       string
	Aggregate  string
	Payload    []byte
	OccurredAt time.Time
	Attempts   int
}

// Outbox stages documents until a worker drains them.
type Outbox interface {
	Record(ctx context.Context, doc Document) error
}

// EventEncoder turns a domain event into a payload.
type EventEncoder interface {
	Encode(e events.Event) ([]byte, error)
}

// JSONEventEncoder marshals the event struct as-is.
type JSONEventEncoder struct{}

func (JSONEventEncoder) Encode(e events.Event) ([]byte, error) {
	return json.Marshal(e)
}

// RecordDomainEvents stages every pending event of an aggregate. Publication
// is best-effort side reporting; the booking flow never depends on it.
func RecordDomainEvents(ctx context.Context, ob Outbox, enc EventEncoder, aggregate string, evts []events.Event) error {
	if ob == nil || len(evts) == 0 {
		return nil
	}
	if enc == nil {
		enc = JSONEventEncoder{}
	}
	for _, e := range evts {
		payload, err := enc.Encode(e)
		if err != nil {
			return err
		}
		doc := Document{
			ID:         uuid.NewString(),
			Name:       e.Name(),
			Aggregate:  aggregate,
			Payload:    payload,
			OccurredAt: e.OccurredAt(),
		}
		if err := ob.Record(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
