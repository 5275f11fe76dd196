package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "staybook/internal/app/outbox"
	infraoutbox "staybook/internal/infra/outbox"
)

// OutboxStore is an in-process outbox. Staged events do not survive a
// restart, which matches the advisory role publication plays here.
type OutboxStore struct {
	mu      sync.Mutex
	entries map[string]*infraoutbox.Entry
	order   []string
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{entries: make(map[string]*infraoutbox.Entry)}
}

func (s *OutboxStore) Record(ctx context.Context, doc appoutbox.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.entries[doc.ID] = &infraoutbox.Entry{
		ID:          doc.ID,
		Name:        doc.Name,
		Aggregate:   doc.Aggregate,
		Payload:     doc.Payload,
		OccurredAt:  doc.OccurredAt,
		State:       infraoutbox.StateNew,
		NextAttempt: now,
	}
	s.order = append(s.order, doc.ID)
	return nil
}

// Claim hands out the oldest due entry, oldest first.
func (s *OutboxStore) Claim(ctx context.Context, workerID string) (*infraoutbox.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range s.order {
		entry := s.entries[id]
		if entry == nil {
			continue
		}
		if entry.State != infraoutbox.StateNew && entry.State != infraoutbox.StateFailed {
			continue
		}
		if entry.NextAttempt.After(now) {
			continue
		}
		entry.State = infraoutbox.StateClaimed
		entry.ClaimedBy = workerID
		entry.ClaimedAt = now
		claimed := *entry
		return &claimed, nil
	}
	return nil, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[id]; ok {
		entry.State = infraoutbox.StateSent
		entry.SentAt = time.Now().UTC()
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[id]; ok {
		entry.State = infraoutbox.StateFailed
		entry.NextAttempt = next
		entry.LastError = errMsg
		entry.Attempts++
	}
	return nil
}

var (
	_ appoutbox.Outbox  = (*OutboxStore)(nil)
	_ infraoutbox.Store = (*OutboxStore)(nil)
)
