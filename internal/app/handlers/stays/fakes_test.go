package stays

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/outbox"
	"staybook/internal/app/session"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

var (
	testNow     = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	testSession = session.Session{Token: "tok-abc", UserName: "alice"}
	errTest     = errors.New("remote store unavailable")
)

func rng(from, to string) dates.Range {
	return dates.NewRange(dates.MustParse(from), dates.MustParse(to))
}

func day(s string) dates.Date {
	return dates.MustParse(s)
}

type fakeDirectory struct {
	venue *venue.Venue
	stays []*booking.Stay
	err   error
}

func (f *fakeDirectory) Venue(context.Context, venue.VenueID, bool) (*venue.Venue, []*booking.Stay, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.venue, f.stays, nil
}

type fakeGateway struct {
	created *booking.Stay
	updated *booking.Stay

	createCalls int
	updateCalls int
	deleteCalls int
	lastToken   string
	err         error
}

func (f *fakeGateway) Create(_ context.Context, token string, venueID venue.VenueID, c booking.Candidate) (*booking.Stay, error) {
	f.createCalls++
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return booking.Restore("bk-new", venueID, "", c.Range, c.Guests, testNow, testNow), nil
}

func (f *fakeGateway) Update(_ context.Context, token string, id booking.StayID, c booking.Candidate) (*booking.Stay, error) {
	f.updateCalls++
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	if f.updated != nil {
		return f.updated, nil
	}
	return booking.Restore(id, "", "", c.Range, c.Guests, testNow, testNow.Add(time.Hour)), nil
}

func (f *fakeGateway) Delete(_ context.Context, token string, id booking.StayID) error {
	f.deleteCalls++
	f.lastToken = token
	return f.err
}

type fakeCollections struct {
	putOwner string
	putVenue venue.VenueID
	putStays []*booking.Stay
	puts     int
}

func (f *fakeCollections) Get(context.Context, string, venue.VenueID) ([]*booking.Stay, bool, error) {
	return nil, false, nil
}

func (f *fakeCollections) Put(_ context.Context, owner string, venueID venue.VenueID, stays []*booking.Stay) error {
	f.puts++
	f.putOwner = owner
	f.putVenue = venueID
	f.putStays = stays
	return nil
}

type fakeOutbox struct {
	docs []outbox.Document
}

func (f *fakeOutbox) Record(_ context.Context, doc outbox.Document) error {
	f.docs = append(f.docs, doc)
	return nil
}

func testVenue() *venue.Venue {
	return &venue.Venue{ID: "v-1", Name: "Seaside Cabin", Price: 150, MaxGuests: 4}
}

func confirmedStay(id booking.StayID, from, to string) *booking.Stay {
	return booking.Restore(id, "v-1", "alice", rng(from, to), 2, testNow, testNow)
}
