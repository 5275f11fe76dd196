package memory

import (
	"context"
	"sync"

	"staybook/internal/app/ports"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/venue"
)

// StayCollections keeps the session-owned stay collections in memory, one
// entry per owner and venue. Entries are advisory mirrors of the remote
// store; they are replaced wholesale by reconciliation, never mutated in
// place.
type StayCollections struct {
	mu    sync.RWMutex
	items map[string][]*booking.Stay
}

func NewStayCollections() *StayCollections {
	return &StayCollections{items: make(map[string][]*booking.Stay)}
}

func collectionKey(owner string, venueID venue.VenueID) string {
	return owner + "\x00" + string(venueID)
}

// Get returns a copy of the collection for owner and venue.
func (s *StayCollections) Get(ctx context.Context, owner string, venueID venue.VenueID) ([]*booking.Stay, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stays, ok := s.items[collectionKey(owner, venueID)]
	if !ok {
		return nil, false, nil
	}
	out := make([]*booking.Stay, len(stays))
	copy(out, stays)
	return out, true, nil
}

// Put replaces the collection for owner and venue.
func (s *StayCollections) Put(ctx context.Context, owner string, venueID venue.VenueID, stays []*booking.Stay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]*booking.Stay, len(stays))
	copy(stored, stays)
	s.items[collectionKey(owner, venueID)] = stored
	return nil
}

var _ ports.StayCollections = (*StayCollections)(nil)
