package booking

import (
	"errors"
	"time"

	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/venue"
)

var (
	ErrInvalidState  = errors.New("booking: invalid state transition")
	ErrStayNotFound  = errors.New("booking: stay not found")
	ErrInvalidGuests = errors.New("booking: guests count must be positive")
)

type StayID string

type StayState string

const (
	// StateDraft is a stay being composed locally; nothing has been sent.
	StateDraft StayState = "DRAFT"
	// StateEditing is a persisted stay with local, unsubmitted changes.
	StateEditing StayState = "EDITING"
	// StatePending has a create, update or delete request in flight.
	StatePending StayState = "PENDING"
	// StateConfirmed is persisted in the remote store.
	StateConfirmed StayState = "CONFIRMED"
	// StateDeleted has been removed from the remote store.
	StateDeleted StayState = "DELETED"
)

// Op names a remote mutation of a stay.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Stay is a customer's booking of a venue for an inclusive date range. The
// aggregate tracks the client-visible lifecycle: a failed in-flight request
// drops back to the prior stable state with no partial state retained.
type Stay struct {
	ID       StayID
	VenueID  venue.VenueID
	Customer string
	Range    dates.Range
	Guests   int
	State    StayState

	CreatedAt time.Time
	UpdatedAt time.Time

	pendingOp Op
	revertTo  StayState

	events.EventRecorder
}

// NewDraft starts composing a stay for a venue.
func NewDraft(venueID venue.VenueID, customer string, c Candidate) (*Stay, error) {
	if c.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	return &Stay{
		VenueID:  venueID,
		Customer: customer,
		Range:    c.Range,
		Guests:   c.Guests,
		State:    StateDraft,
	}, nil
}

// Restore rebuilds a confirmed stay from store data.
func Restore(id StayID, venueID venue.VenueID, customer string, r dates.Range, guests int, created, updated time.Time) *Stay {
	return &Stay{
		ID:        id,
		VenueID:   venueID,
		Customer:  customer,
		Range:     r,
		Guests:    guests,
		State:     StateConfirmed,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// BeginEdit moves a confirmed stay into local editing with the new candidate
// values applied. The previous range still lives in the remote store until
// the update is confirmed.
func (s *Stay) BeginEdit(c Candidate) error {
	if s.State != StateConfirmed {
		return ErrInvalidState
	}
	if c.Guests <= 0 {
		return ErrInvalidGuests
	}
	s.Range = c.Range
	s.Guests = c.Guests
	s.State = StateEditing
	return nil
}

// Submit marks the stay pending for op. Only one request may be in flight at
// a time; a pending stay rejects further submissions, which is what keeps a
// double-click from creating a duplicate booking upstream.
func (s *Stay) Submit(op Op) error {
	switch {
	case op == OpCreate && s.State == StateDraft:
		s.revertTo = StateDraft
	case op == OpUpdate && s.State == StateEditing:
		s.revertTo = StateEditing
	case op == OpDelete && s.State == StateConfirmed:
		s.revertTo = StateConfirmed
	default:
		return ErrInvalidState
	}
	s.pendingOp = op
	s.State = StatePending
	return nil
}

// Complete settles a pending request with the store's answer. Creates adopt
// the server-assigned id and timestamps; deletes finish in StateDeleted.
func (s *Stay) Complete(id StayID, now time.Time) error {
	if s.State != StatePending {
		return ErrInvalidState
	}
	op := s.pendingOp
	s.pendingOp = ""
	s.revertTo = ""
	switch op {
	case OpCreate:
		s.ID = id
		s.CreatedAt = now
		s.UpdatedAt = now
		s.State = StateConfirmed
		s.Record(StayCreated{StayID: s.ID, VenueID: s.VenueID, Customer: s.Customer, Range: s.Range, Guests: s.Guests, At: now})
	case OpUpdate:
		s.UpdatedAt = now
		s.State = StateConfirmed
		s.Record(StayUpdated{StayID: s.ID, VenueID: s.VenueID, Range: s.Range, Guests: s.Guests, At: now})
	case OpDelete:
		s.UpdatedAt = now
		s.State = StateDeleted
		s.Record(StayDeleted{StayID: s.ID, VenueID: s.VenueID, At: now})
	default:
		return ErrInvalidState
	}
	return nil
}

// Fail returns a pending stay to the stable state it was submitted from.
func (s *Stay) Fail() error {
	if s.State != StatePending {
		return ErrInvalidState
	}
	s.State = s.revertTo
	s.pendingOp = ""
	s.revertTo = ""
	return nil
}

// InFlight reports whether a request for this stay is awaiting the store.
func (s *Stay) InFlight() bool { return s.State == StatePending }

// Active reports whether the stay still occupies its dates.
func (s *Stay) Active() bool { return s.State != StateDeleted }
