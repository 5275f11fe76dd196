package stays

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/ports"
	"staybook/internal/app/session"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

const deleteStayKey = "stays.delete"

// DeleteStayCommand removes a stay from the remote store. Deleting a stay
// that is already gone reports not-found rather than success, so the UI
// learns its collection is stale.
type DeleteStayCommand struct {
	CommandID       string
	StayID          string
	VenueID         string
	Session         session.Session
	IdempotencyKeyV string
}

func (c DeleteStayCommand) Key() string { return deleteStayKey }

func (c DeleteStayCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c DeleteStayCommand) Validate() error {
	if c.StayID == "" {
		return ErrStayIDRequired
	}
	if c.VenueID == "" {
		return ErrVenueIDRequired
	}
	return nil
}

type DeleteStayResult struct {
	StayID     string        `json:"stay_id"`
	Deleted    bool          `json:"deleted"`
	Collection []StaySummary `json:"collection,omitempty"`
}

type DeleteStayHandler struct {
	Directory   ports.VenueDirectory
	Gateway     ports.StayGateway
	Collections ports.StayCollections
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Now         func() time.Time
}

func (h *DeleteStayHandler) Handle(ctx context.Context, cmd DeleteStayCommand) (*DeleteStayResult, error) {
	if err := cmd.Session.Require(); err != nil {
		return nil, err
	}

	_, stays, err := h.Directory.Venue(ctx, venue.VenueID(cmd.VenueID), true)
	if err != nil {
		return nil, err
	}

	current := findStay(stays, booking.StayID(cmd.StayID))
	if current == nil {
		// Keep a tombstone aggregate so the lifecycle event still carries
		// the venue even when the local view already lost the stay.
		current = booking.Restore(booking.StayID(cmd.StayID), venue.VenueID(cmd.VenueID), cmd.Session.UserName, dates.Range{}, 0, time.Time{}, time.Time{})
	}
	if err := current.Submit(booking.OpDelete); err != nil {
		return nil, err
	}

	if err := h.Gateway.Delete(ctx, cmd.Session.Token, booking.StayID(cmd.StayID)); err != nil {
		_ = current.Fail()
		return nil, err
	}
	if err := current.Complete(current.ID, h.now()); err != nil {
		return nil, err
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, cmd.StayID, current.PendingEvents()); err != nil {
		return nil, err
	}
	current.ClearEvents()

	collection := booking.ApplyResult(stays, booking.OpDelete, current)
	if h.Collections != nil {
		if err := h.Collections.Put(ctx, cmd.Session.UserName, venue.VenueID(cmd.VenueID), collection); err != nil {
			return nil, err
		}
	}

	return &DeleteStayResult{
		StayID:     cmd.StayID,
		Deleted:    true,
		Collection: summarizeAll(collection),
	}, nil
}

func (h *DeleteStayHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[DeleteStayCommand, *DeleteStayResult] = (*DeleteStayHandler)(nil)
var _ middleware.IdempotentCommand = DeleteStayCommand{}
