package stays

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	availabilityapp "staybook/internal/app/handlers/availability"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/ports"
	"staybook/internal/app/session"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
)

const updateStayKey = "stays.update"

// UpdateStayCommand edits an existing stay. The blocked set is built with
// the stay itself excluded, so keeping or shrinking the current range never
// self-conflicts.
type UpdateStayCommand struct {
	CommandID       string
	StayID          string
	VenueID         string
	DateFrom        dates.Date
	DateTo          dates.Date
	Guests          int
	Session         session.Session
	IdempotencyKeyV string
}

func (c UpdateStayCommand) Key() string { return updateStayKey }

func (c UpdateStayCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c UpdateStayCommand) Validate() error {
	if c.StayID == "" {
		return ErrStayIDRequired
	}
	if c.VenueID == "" {
		return ErrVenueIDRequired
	}
	return nil
}

func (c UpdateStayCommand) candidate() booking.Candidate {
	return booking.Candidate{
		Range:  dates.NewRange(c.DateFrom, c.DateTo),
		Guests: c.Guests,
	}
}

type UpdateStayResult struct {
	Validation ValidationView `json:"validation"`
	Stay       *StaySummary   `json:"stay,omitempty"`
	Collection []StaySummary  `json:"collection,omitempty"`
}

type UpdateStayHandler struct {
	Directory   ports.VenueDirectory
	Gateway     ports.StayGateway
	Collections ports.StayCollections
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Now         func() time.Time
}

func (h *UpdateStayHandler) Handle(ctx context.Context, cmd UpdateStayCommand) (*UpdateStayResult, error) {
	if err := cmd.Session.Require(); err != nil {
		return nil, err
	}

	v, stays, err := h.Directory.Venue(ctx, venue.VenueID(cmd.VenueID), true)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	current := findStay(stays, booking.StayID(cmd.StayID))
	if current == nil {
		// The stay vanished between the caller's last fetch and now;
		// surface the staleness instead of updating blind.
		return nil, booking.ErrStayNotFound
	}

	cand := cmd.candidate()
	blocked := domainavailability.Build(availabilityapp.ToRecords(stays), cmd.StayID)
	res := booking.Validate(cand, v, blocked)
	if !res.OK {
		return &UpdateStayResult{Validation: viewOf(res)}, nil
	}

	if err := current.BeginEdit(cand); err != nil {
		return nil, err
	}
	if err := current.Submit(booking.OpUpdate); err != nil {
		return nil, err
	}

	saved, err := h.Gateway.Update(ctx, cmd.Session.Token, current.ID, cand)
	if err != nil {
		_ = current.Fail()
		return nil, err
	}
	if err := current.Complete(current.ID, h.now()); err != nil {
		return nil, err
	}
	if !saved.UpdatedAt.IsZero() {
		current.UpdatedAt = saved.UpdatedAt
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, string(current.ID), current.PendingEvents()); err != nil {
		return nil, err
	}
	current.ClearEvents()

	collection := booking.ApplyResult(stays, booking.OpUpdate, current)
	if h.Collections != nil {
		if err := h.Collections.Put(ctx, cmd.Session.UserName, v.ID, collection); err != nil {
			return nil, err
		}
	}

	summary := summarize(current)
	return &UpdateStayResult{
		Validation: viewOf(res),
		Stay:       &summary,
		Collection: summarizeAll(collection),
	}, nil
}

func (h *UpdateStayHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[UpdateStayCommand, *UpdateStayResult] = (*UpdateStayHandler)(nil)
var _ middleware.IdempotentCommand = UpdateStayCommand{}
