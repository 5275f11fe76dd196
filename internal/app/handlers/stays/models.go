package stays

import (
	"errors"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
)

var (
	ErrVenueIDRequired = errors.New("stays: venue id required")
	ErrStayIDRequired  = errors.New("stays: stay id required")
)

// ValidationView is the caller-facing shape of a validation outcome. A
// rejected candidate is a normal result, not an error; the UI shows the
// message inline and lets the user adjust.
type ValidationView struct {
	OK        bool           `json:"ok"`
	Reason    booking.Reason `json:"reason,omitempty"`
	Message   string         `json:"message,omitempty"`
	Nights    int            `json:"nights,omitempty"`
	TotalCost float64        `json:"total_cost,omitempty"`
}

func viewOf(r booking.Result) ValidationView {
	return ValidationView{
		OK:        r.OK,
		Reason:    r.Reason,
		Message:   r.Message,
		Nights:    r.Nights,
		TotalCost: r.TotalCost,
	}
}

// StaySummary is the wire shape of a stay in results and collections.
type StaySummary struct {
	ID        string     `json:"id"`
	VenueID   string     `json:"venue_id"`
	DateFrom  dates.Date `json:"date_from"`
	DateTo    dates.Date `json:"date_to"`
	Guests    int        `json:"guests"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func summarize(s *booking.Stay) StaySummary {
	return StaySummary{
		ID:        string(s.ID),
		VenueID:   string(s.VenueID),
		DateFrom:  s.Range.From,
		DateTo:    s.Range.To,
		Guests:    s.Guests,
		State:     string(s.State),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func summarizeAll(stays []*booking.Stay) []StaySummary {
	out := make([]StaySummary, 0, len(stays))
	for _, s := range stays {
		out = append(out, summarize(s))
	}
	return out
}

func findStay(stays []*booking.Stay, id booking.StayID) *booking.Stay {
	for _, s := range stays {
		if s.ID == id {
			return s
		}
	}
	return nil
}
