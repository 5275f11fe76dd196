package ports

import (
	"context"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/venue"
)

// VenueDirectory reads venues, optionally with their embedded stays, from
// the remote booking store.
type VenueDirectory interface {
	Venue(ctx context.Context, id venue.VenueID, withStays bool) (*venue.Venue, []*booking.Stay, error)
}

// StayGateway submits stay mutations to the remote booking store. Every call
// is bearer-token authenticated; implementations refuse an empty token
// without touching the network.
type StayGateway interface {
	Create(ctx context.Context, token string, venueID venue.VenueID, c booking.Candidate) (*booking.Stay, error)
	Update(ctx context.Context, token string, id booking.StayID, c booking.Candidate) (*booking.Stay, error)
	Delete(ctx context.Context, token string, id booking.StayID) error
}

// StayCollections holds the session-owned stay collections. Entries are
// advisory mirrors of the store, keyed per owner and venue; there is no
// cross-session sharing.
type StayCollections interface {
	Get(ctx context.Context, owner string, venueID venue.VenueID) ([]*booking.Stay, bool, error)
	Put(ctx context.Context, owner string, venueID venue.VenueID, stays []*booking.Stay) error
}
