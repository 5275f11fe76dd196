package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a staged event together with its delivery bookkeeping.
type Entry struct {
	ID          string
	Name        string
	Aggregate   string
	Payload     []byte
	OccurredAt  time.Time
	State       string
	Attempts    int
	NextAttempt time.Time
	ClaimedBy   string
	ClaimedAt   time.Time
	SentAt      time.Time
	LastError   string
}

const (
	StateNew     = "NEW"
	StateClaimed = "CLAIMED"
	StateSent    = "SENT"
	StateFailed  = "FAILED"
)

// Store hands out due entries to workers and tracks their fate.
type Store interface {
	Claim(ctx context.Context, workerID string) (*Entry, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// Worker drains the outbox into Kafka. Events are wrapped as CloudEvents
// and routed to a topic derived from the event name.
type Worker struct {
	Store       Store
	Producer    Producer
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.processOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) error {
	entry, err := w.Store.Claim(ctx, w.workerID())
	if err != nil || entry == nil {
		return err
	}
	topic := w.topicFor(entry.Name)
	payload, headers, err := w.formatPayload(entry)
	if err != nil {
		_ = w.Store.MarkFailed(ctx, entry.ID, w.nextRetry(entry.Attempts), err.Error())
		return nil
	}
	if err := w.Producer.Publish(ctx, topic, entry.Aggregate, payload, headers); err != nil {
		_ = w.Store.MarkFailed(ctx, entry.ID, w.nextRetry(entry.Attempts), err.Error())
		return nil
	}
	return w.Store.MarkSent(ctx, entry.ID)
}

func (w *Worker) formatPayload(entry *Entry) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(entry.Payload, &data); err != nil {
		return nil, nil, err
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            entry.Name + ".v1",
		"source":          w.source(),
		"time":            entry.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	return payload, headers, nil
}

func (w *Worker) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if w.TopicPrefix != "" {
		topic = w.TopicPrefix + topic
	}
	return topic
}

func (w *Worker) workerID() string {
	if w.ID != "" {
		return w.ID
	}
	return uuid.NewString()
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) nextRetry(attempts int) time.Time {
	if attempts < len(w.Backoff) {
		return time.Now().Add(w.Backoff[attempts])
	}
	if len(w.Backoff) > 0 {
		return time.Now().Add(w.Backoff[len(w.Backoff)-1])
	}
	return time.Now().Add(5 * time.Second)
}

func (w *Worker) source() string {
	if w.Source != "" {
		return w.Source
	}
	return "app://staybook"
}
