package booking

import (
	"time"

	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

// StayCreated is raised when the remote store confirms a new stay.
type StayCreated struct {
	StayID   StayID
	VenueID  venue.VenueID
	Customer string
	Range    dates.Range
	Guests   int
	At       time.Time
}

func (e StayCreated) Name() string          { return "stay.created" }
func (e StayCreated) OccurredAt() time.Time { return e.At }

// StayUpdated is raised when an edit to an existing stay is confirmed.
type StayUpdated struct {
	StayID  StayID
	VenueID venue.VenueID
	Range   dates.Range
	Guests  int
	At      time.Time
}

func (e StayUpdated) Name() string          { return "stay.updated" }
func (e StayUpdated) OccurredAt() time.Time { return e.At }

// StayDeleted is raised when a stay is removed from the remote store.
type StayDeleted struct {
	StayID  StayID
	VenueID venue.VenueID
	At      time.Time
}

func (e StayDeleted) Name() string          { return "stay.deleted" }
func (e StayDeleted) OccurredAt() time.Time { return e.At }
