package availability

import (
	"context"
	"errors"

	"staybook/internal/app/ports"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

const getCalendarKey = "availability.calendar"

var ErrVenueIDRequired = errors.New("availability: venue id required")

// GetCalendarQuery asks for the blocked dates of one venue. ExcludeStayID is
// set when the caller is editing that stay, so its current dates do not block
// the edit.
type GetCalendarQuery struct {
	VenueID       string
	ExcludeStayID string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

func (q GetCalendarQuery) Validate() error {
	if q.VenueID == "" {
		return ErrVenueIDRequired
	}
	return nil
}

// Block is one contiguous unavailable span, inclusive on both ends.
type Block struct {
	From dates.Date `json:"from"`
	To   dates.Date `json:"to"`
}

type GetCalendarResult struct {
	VenueID      string       `json:"venue_id"`
	Blocks       []Block      `json:"blocks"`
	BlockedDates []dates.Date `json:"blocked_dates"`
	Skipped      int          `json:"skipped_records"`
}

// GetCalendarHandler fetches a venue's stays from the remote store and
// derives the blocked-date set from them.
type GetCalendarHandler struct {
	Directory ports.VenueDirectory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (*GetCalendarResult, error) {
	_, stays, err := h.Directory.Venue(ctx, venue.VenueID(q.VenueID), true)
	if err != nil {
		return nil, err
	}
	blocked := domainavailability.Build(ToRecords(stays), q.ExcludeStayID)

	blocks := make([]Block, 0, len(blocked.Blocks()))
	for _, r := range blocked.Blocks() {
		blocks = append(blocks, Block{From: r.From, To: r.To})
	}
	return &GetCalendarResult{
		VenueID:      q.VenueID,
		Blocks:       blocks,
		BlockedDates: blocked.Dates(),
		Skipped:      blocked.Skipped(),
	}, nil
}

// ToRecords projects stays into the blocked-set build input, dropping stays
// that no longer occupy their dates.
func ToRecords(stays []*booking.Stay) []domainavailability.Booking {
	out := make([]domainavailability.Booking, 0, len(stays))
	for _, s := range stays {
		if !s.Active() {
			continue
		}
		out = append(out, domainavailability.Booking{ID: string(s.ID), Range: s.Range})
	}
	return out
}

var _ queries.Handler[GetCalendarQuery, *GetCalendarResult] = (*GetCalendarHandler)(nil)
