package stays

import (
	"context"

	availabilityapp "staybook/internal/app/handlers/availability"
	"staybook/internal/app/ports"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

const previewStayKey = "stays.preview"

// PreviewStayQuery validates a candidate stay and computes its nights and
// total cost without any side effect. This is the first half of the
// two-step protocol: the caller shows the preview, then submits explicitly.
type PreviewStayQuery struct {
	VenueID       string
	DateFrom      dates.Date
	DateTo        dates.Date
	Guests        int
	ExcludeStayID string
}

func (q PreviewStayQuery) Key() string { return previewStayKey }

func (q PreviewStayQuery) Validate() error {
	if q.VenueID == "" {
		return ErrVenueIDRequired
	}
	return nil
}

func (q PreviewStayQuery) candidate() booking.Candidate {
	return booking.Candidate{
		Range:  dates.NewRange(q.DateFrom, q.DateTo),
		Guests: q.Guests,
	}
}

type PreviewStayResult struct {
	ValidationView
	VenueID string `json:"venue_id"`
}

// PreviewStayHandler builds a fresh blocked set for the venue and validates
// the candidate against it.
type PreviewStayHandler struct {
	Directory ports.VenueDirectory
}

func (h *PreviewStayHandler) Handle(ctx context.Context, q PreviewStayQuery) (*PreviewStayResult, error) {
	v, stays, err := h.Directory.Venue(ctx, venue.VenueID(q.VenueID), true)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	blocked := domainavailability.Build(availabilityapp.ToRecords(stays), q.ExcludeStayID)
	res := booking.Validate(q.candidate(), v, blocked)
	return &PreviewStayResult{ValidationView: viewOf(res), VenueID: q.VenueID}, nil
}

var _ queries.Handler[PreviewStayQuery, *PreviewStayResult] = (*PreviewStayHandler)(nil)
