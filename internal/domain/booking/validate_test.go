package booking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

func rng(from, to string) dates.Range {
	return dates.NewRange(dates.MustParse(from), dates.MustParse(to))
}

func testVenue() *venue.Venue {
	return &venue.Venue{ID: "v-1", Name: "Cabin", Price: 100, MaxGuests: 4}
}

func TestValidateAccepts(t *testing.T) {
	res := Validate(Candidate{Range: rng("2026-07-01", "2026-07-04"), Guests: 2}, testVenue(), availability.Build(nil, ""))
	require.True(t, res.OK)
	require.Equal(t, ReasonNone, res.Reason)
	require.Equal(t, 4, res.Nights)
	require.Equal(t, 400.0, res.TotalCost)
}

func TestValidateGuestCountAtMaxPasses(t *testing.T) {
	res := Validate(Candidate{Range: rng("2026-07-01", "2026-07-02"), Guests: 4}, testVenue(), availability.Build(nil, ""))
	require.True(t, res.OK)
}

func TestValidateSameDayBillsOneNight(t *testing.T) {
	res := Validate(Candidate{Range: rng("2026-07-01", "2026-07-01"), Guests: 1}, testVenue(), availability.Build(nil, ""))
	require.True(t, res.OK)
	require.Equal(t, 1, res.Nights)
	require.Equal(t, 100.0, res.TotalCost)
}

func TestValidateRejections(t *testing.T) {
	blocked := availability.Build([]availability.Booking{
		{ID: "other", Range: rng("2026-07-10", "2026-07-12")},
	}, "")

	cases := []struct {
		name string
		cand Candidate
		want Reason
	}{
		{"zero guests", Candidate{Range: rng("2026-07-01", "2026-07-02"), Guests: 0}, ReasonGuestsTooLow},
		{"negative guests", Candidate{Range: rng("2026-07-01", "2026-07-02"), Guests: -3}, ReasonGuestsTooLow},
		{"too many guests", Candidate{Range: rng("2026-07-01", "2026-07-02"), Guests: 5}, ReasonGuestsExceedMax},
		{"inverted range", Candidate{Range: rng("2026-07-05", "2026-07-01"), Guests: 2}, ReasonInvalidRange},
		{"missing endpoints", Candidate{Guests: 2}, ReasonInvalidRange},
		{"blocked dates", Candidate{Range: rng("2026-07-11", "2026-07-14"), Guests: 2}, ReasonUnavailable},
		{"touching blocked endpoint", Candidate{Range: rng("2026-07-12", "2026-07-14"), Guests: 2}, ReasonUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.cand, testVenue(), blocked)
			require.False(t, res.OK)
			require.Equal(t, tc.want, res.Reason)
			require.NotEmpty(t, res.Message)
			require.Zero(t, res.Nights)
			require.Zero(t, res.TotalCost)
		})
	}
}

func TestValidateGuestChecksWinOverRange(t *testing.T) {
	// Both guests and range are wrong; the guest bound is reported first.
	res := Validate(Candidate{Range: rng("2026-07-05", "2026-07-01"), Guests: 0}, testVenue(), availability.Build(nil, ""))
	require.Equal(t, ReasonGuestsTooLow, res.Reason)

	res = Validate(Candidate{Range: rng("2026-07-05", "2026-07-01"), Guests: 9}, testVenue(), availability.Build(nil, ""))
	require.Equal(t, ReasonGuestsExceedMax, res.Reason)
}

func TestValidateNilBlockedSet(t *testing.T) {
	res := Validate(Candidate{Range: rng("2026-07-01", "2026-07-02"), Guests: 2}, testVenue(), nil)
	require.True(t, res.OK)
	require.Equal(t, 2, res.Nights)
}

func TestNights(t *testing.T) {
	require.Equal(t, 1, Nights(rng("2026-07-01", "2026-07-01")))
	require.Equal(t, 2, Nights(rng("2026-07-01", "2026-07-02")))
	require.Equal(t, 4, Nights(rng("2026-07-01", "2026-07-04")))
	require.Equal(t, 1, Nights(dates.Range{}), "degenerate range floors at one night")
}
