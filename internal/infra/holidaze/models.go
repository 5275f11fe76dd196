package holidaze

import (
	"strings"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

// Wire shapes of the booking store. Responses wrap payloads in a data
// envelope; errors arrive as {"errors":[{"message":...}]}.

type venueEnvelope struct {
	Data venuePayload `json:"data"`
}

type venuePayload struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	MaxGuests   int              `json:"maxGuests"`
	Rating      float64          `json:"rating"`
	Media       []mediaPayload   `json:"media"`
	Location    locationPayload  `json:"location"`
	Bookings    []bookingPayload `json:"bookings"`
}

type mediaPayload struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type locationPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type bookingEnvelope struct {
	Data bookingPayload `json:"data"`
}

type bookingPayload struct {
	ID       string           `json:"id"`
	DateFrom string           `json:"dateFrom"`
	DateTo   string           `json:"dateTo"`
	Guests   int              `json:"guests"`
	Created  time.Time        `json:"created"`
	Updated  time.Time        `json:"updated"`
	Customer *customerPayload `json:"customer,omitempty"`
}

type customerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createBookingRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
	VenueID  string `json:"venueId"`
}

// updateBookingRequest omits the venue id: a booking's venue is immutable
// after creation.
type updateBookingRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

type errorEnvelope struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
}

func (e errorEnvelope) message() string {
	if len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return e.Errors[0].Message
	}
	return ""
}

// parseWireDate normalizes a store-supplied date to day granularity. The
// store sometimes answers with full timestamps; only the date part is
// meaningful, regardless of the zone it was rendered in.
func parseWireDate(s string) (dates.Date, error) {
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		s = s[:idx]
	}
	return dates.Parse(s)
}

func mapVenue(p venuePayload) *venue.Venue {
	v := &venue.Venue{
		ID:          venue.VenueID(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		MaxGuests:   p.MaxGuests,
		Rating:      p.Rating,
		Location: venue.Location{
			Address: p.Location.Address,
			City:    p.Location.City,
			Zip:     p.Location.Zip,
			Country: p.Location.Country,
		},
	}
	for _, m := range p.Media {
		v.Media = append(v.Media, venue.Media{URL: m.URL, Alt: m.Alt})
	}
	return v
}

// mapStay converts a stored booking into a confirmed stay aggregate. An
// unparseable date yields a stay with a zero range, which the blocked-set
// build then counts as skipped instead of failing the fetch.
func mapStay(p bookingPayload, venueID venue.VenueID) *booking.Stay {
	var r dates.Range
	if from, err := parseWireDate(p.DateFrom); err == nil {
		r.From = from
	}
	if to, err := parseWireDate(p.DateTo); err == nil {
		r.To = to
	}
	customer := ""
	if p.Customer != nil {
		customer = p.Customer.Name
	}
	return booking.Restore(booking.StayID(p.ID), venueID, customer, r, p.Guests, p.Created, p.Updated)
}
