package venue

import "errors"

var (
	ErrGuestsLimit   = errors.New("venue: max guests must be at least 1")
	ErrNegativePrice = errors.New("venue: nightly price must be non-negative")
	ErrVenueNotFound = errors.New("venue: not found")
)

type VenueID string

// Venue is a bookable property as served by the remote booking store. It is
// read-mostly: the engine consumes price and guest constraints and never
// mutates the record.
type Venue struct {
	ID          VenueID
	Name        string
	Description string
	Price       float64
	MaxGuests   int
	Rating      float64
	Media       []Media
	Location    Location
}

type Media struct {
	URL string
	Alt string
}

type Location struct {
	Address string
	City    string
	Zip     string
	Country string
}

// Validate checks the constraints the booking engine relies on.
func (v *Venue) Validate() error {
	if v.MaxGuests < 1 {
		return ErrGuestsLimit
	}
	if v.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
