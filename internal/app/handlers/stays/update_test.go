package stays

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staybook/internal/domain/booking"
)

func newUpdateHandler(dir *fakeDirectory, gw *fakeGateway, col *fakeCollections, ob *fakeOutbox) *UpdateStayHandler {
	return &UpdateStayHandler{
		Directory:   dir,
		Gateway:     gw,
		Collections: col,
		Outbox:      ob,
		Now:         func() time.Time { return testNow },
	}
}

func TestUpdateStayExcludesItselfFromBlockedSet(t *testing.T) {
	// The only conflict with the new dates is the stay being edited, so the
	// update must go through.
	dir := &fakeDirectory{venue: testVenue(), stays: []*booking.Stay{
		confirmedStay("bk-1", "2026-07-10", "2026-07-14"),
		confirmedStay("bk-2", "2026-07-20", "2026-07-22"),
	}}
	gw := &fakeGateway{}
	col := &fakeCollections{}
	ob := &fakeOutbox{}
	h := newUpdateHandler(dir, gw, col, ob)

	res, err := h.Handle(context.Background(), UpdateStayCommand{
		StayID:   "bk-1",
		VenueID:  "v-1",
		DateFrom: day("2026-07-11"),
		DateTo:   day("2026-07-15"),
		Guests:   3,
		Session:  testSession,
	})
	require.NoError(t, err)
	require.True(t, res.Validation.OK)
	require.Equal(t, 5, res.Validation.Nights)
	require.Equal(t, 1, gw.updateCalls)

	require.NotNil(t, res.Stay)
	require.Equal(t, "bk-1", res.Stay.ID)
	require.Equal(t, "2026-07-11", res.Stay.DateFrom.String())

	require.Len(t, ob.docs, 1)
	require.Equal(t, "stay.updated", ob.docs[0].Name)
	require.Equal(t, 1, col.puts)
	require.Len(t, res.Collection, 2, "collection keeps both stays")
}

func TestUpdateStayStillBlockedByOthers(t *testing.T) {
	dir := &fakeDirectory{venue: testVenue(), stays: []*booking.Stay{
		confirmedStay("bk-1", "2026-07-10", "2026-07-14"),
		confirmedStay("bk-2", "2026-07-20", "2026-07-22"),
	}}
	gw := &fakeGateway{}
	h := newUpdateHandler(dir, gw, &fakeCollections{}, &fakeOutbox{})

	res, err := h.Handle(context.Background(), UpdateStayCommand{
		StayID:   "bk-1",
		VenueID:  "v-1",
		DateFrom: day("2026-07-18"),
		DateTo:   day("2026-07-21"),
		Guests:   2,
		Session:  testSession,
	})
	require.NoError(t, err)
	require.False(t, res.Validation.OK)
	require.Equal(t, booking.ReasonUnavailable, res.Validation.Reason)
	require.Zero(t, gw.updateCalls)
}

func TestUpdateStayMissingFromStore(t *testing.T) {
	dir := &fakeDirectory{venue: testVenue(), stays: []*booking.Stay{
		confirmedStay("bk-2", "2026-07-20", "2026-07-22"),
	}}
	gw := &fakeGateway{}
	h := newUpdateHandler(dir, gw, &fakeCollections{}, &fakeOutbox{})

	_, err := h.Handle(context.Background(), UpdateStayCommand{
		StayID:   "bk-1",
		VenueID:  "v-1",
		DateFrom: day("2026-07-01"),
		DateTo:   day("2026-07-02"),
		Guests:   2,
		Session:  testSession,
	})
	require.ErrorIs(t, err, booking.ErrStayNotFound)
	require.Zero(t, gw.updateCalls)
}

func TestUpdateStayGatewayFailureReverts(t *testing.T) {
	stay := confirmedStay("bk-1", "2026-07-10", "2026-07-14")
	dir := &fakeDirectory{venue: testVenue(), stays: []*booking.Stay{stay}}
	gw := &fakeGateway{err: errTest}
	col := &fakeCollections{}
	h := newUpdateHandler(dir, gw, col, &fakeOutbox{})

	_, err := h.Handle(context.Background(), UpdateStayCommand{
		StayID:   "bk-1",
		VenueID:  "v-1",
		DateFrom: day("2026-07-11"),
		DateTo:   day("2026-07-15"),
		Guests:   2,
		Session:  testSession,
	})
	require.ErrorIs(t, err, errTest)
	require.Equal(t, booking.StateEditing, stay.State, "stay drops back to its pre-submit state")
	require.Zero(t, col.puts)
}
