package holidaze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "key-123", 5*time.Second, nil)
}

func candidate(from, to string, guests int) booking.Candidate {
	return booking.Candidate{
		Range:  dates.NewRange(dates.MustParse(from), dates.MustParse(to)),
		Guests: guests,
	}
}

func TestVenueFetchWithBookings(t *testing.T) {
	var gotPath, gotQuery, gotAPIKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("X-Noroff-API-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{
			"id":"v-1","name":"Cabin","price":120.5,"maxGuests":3,
			"location":{"city":"Bergen","country":"Norway"},
			"bookings":[
				{"id":"bk-1","dateFrom":"2026-07-01T00:00:00.000Z","dateTo":"2026-07-03T00:00:00.000Z","guests":2},
				{"id":"bk-2","dateFrom":"not-a-date","dateTo":"2026-07-10","guests":1}
			]
		}}`))
	})

	v, stays, err := client.Venue(context.Background(), "v-1", true)
	require.NoError(t, err)
	require.Equal(t, "/holidaze/venues/v-1", gotPath)
	require.Equal(t, "_bookings=true", gotQuery)
	require.Equal(t, "key-123", gotAPIKey)

	require.Equal(t, "Cabin", v.Name)
	require.Equal(t, 120.5, v.Price)
	require.Equal(t, 3, v.MaxGuests)
	require.Equal(t, "Bergen", v.Location.City)

	require.Len(t, stays, 2)
	require.Equal(t, "2026-07-01", stays[0].Range.From.String(), "timestamp truncates to its date")
	require.Equal(t, "2026-07-03", stays[0].Range.To.String())
	require.Equal(t, booking.StateConfirmed, stays[0].State)
	require.False(t, stays[1].Range.Valid(), "bad wire date degrades to an invalid range")
}

func TestVenueNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, _, err := client.Venue(context.Background(), "v-missing", false)
	require.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCreateSendsExactWireDates(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/holidaze/bookings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"bk-9","dateFrom":"2026-07-10","dateTo":"2026-07-12","guests":2,
			"created":"2026-07-01T09:00:00Z","updated":"2026-07-01T09:00:00Z"}}`))
	})

	stay, err := client.Create(context.Background(), "tok-abc", "v-1", candidate("2026-07-10", "2026-07-12", 2))
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
	require.Equal(t, "2026-07-10", gotBody["dateFrom"])
	require.Equal(t, "2026-07-12", gotBody["dateTo"])
	require.Equal(t, float64(2), gotBody["guests"])
	require.Equal(t, "v-1", gotBody["venueId"])

	require.Equal(t, booking.StayID("bk-9"), stay.ID)
	require.False(t, stay.CreatedAt.IsZero())
}

func TestUpdateOmitsVenueID(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/holidaze/bookings/bk-9", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"id":"bk-9","dateFrom":"2026-07-11","dateTo":"2026-07-13","guests":3}}`))
	})

	stay, err := client.Update(context.Background(), "tok-abc", "bk-9", candidate("2026-07-11", "2026-07-13", 3))
	require.NoError(t, err)
	require.NotContains(t, gotBody, "venueId")
	require.Equal(t, "2026-07-11", stay.Range.From.String())
	require.Equal(t, 3, stay.Guests)
}

func TestDelete(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/holidaze/bookings/bk-9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), "tok-abc", "bk-9"))
	require.Equal(t, 1, calls)
}

func TestDeleteNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	require.ErrorIs(t, client.Delete(context.Background(), "tok-abc", "bk-gone"), ErrNotFound)
}

func TestMutationsRefuseEmptyToken(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.Create(context.Background(), "", "v-1", candidate("2026-07-10", "2026-07-12", 2))
	require.ErrorIs(t, err, ErrAuthRequired)
	_, err = client.Update(context.Background(), "", "bk-9", candidate("2026-07-10", "2026-07-12", 2))
	require.ErrorIs(t, err, ErrAuthRequired)
	require.ErrorIs(t, client.Delete(context.Background(), "", "bk-9"), ErrAuthRequired)
	require.Zero(t, calls, "no request leaves the process without a token")
}

func TestRemoteErrorMessageExtraction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"dateFrom cannot be in the past"}],"status":"Bad Request","statusCode":400}`))
	})

	_, err := client.Create(context.Background(), "tok-abc", "v-1", candidate("2026-07-10", "2026-07-12", 2))
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, http.StatusBadRequest, remote.StatusCode)
	require.Equal(t, "dateFrom cannot be in the past", remote.Message)
}

func TestRemoteErrorFallbackMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	_, err := client.Create(context.Background(), "tok-abc", "v-1", candidate("2026-07-10", "2026-07-12", 2))
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, "booking failed", remote.Message)
}
