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

const createStayKey = "stays.create"

// CreateStayCommand submits a new stay for a venue. The session is explicit:
// submits never read ambient auth state.
type CreateStayCommand struct {
	CommandID       string
	VenueID         string
	DateFrom        dates.Date
	DateTo          dates.Date
	Guests          int
	Session         session.Session
	IdempotencyKeyV string
}

func (c CreateStayCommand) Key() string { return createStayKey }

func (c CreateStayCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateStayCommand) Validate() error {
	if c.VenueID == "" {
		return ErrVenueIDRequired
	}
	return nil
}

func (c CreateStayCommand) candidate() booking.Candidate {
	return booking.Candidate{
		Range:  dates.NewRange(c.DateFrom, c.DateTo),
		Guests: c.Guests,
	}
}

type CreateStayResult struct {
	Validation ValidationView `json:"validation"`
	Stay       *StaySummary   `json:"stay,omitempty"`
	Collection []StaySummary  `json:"collection,omitempty"`
}

// CreateStayHandler re-validates the candidate against a freshly fetched
// blocked set at submit time, then drives the create through the remote
// store and reconciles the session collection. Re-validation narrows the
// window between blocked-set fetch and submit; the store's own rejection is
// still the last line of defense.
type CreateStayHandler struct {
	Directory   ports.VenueDirectory
	Gateway     ports.StayGateway
	Collections ports.StayCollections
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Now         func() time.Time
}

func (h *CreateStayHandler) Handle(ctx context.Context, cmd CreateStayCommand) (*CreateStayResult, error) {
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

	cand := cmd.candidate()
	blocked := domainavailability.Build(availabilityapp.ToRecords(stays), "")
	res := booking.Validate(cand, v, blocked)
	if !res.OK {
		return &CreateStayResult{Validation: viewOf(res)}, nil
	}

	draft, err := booking.NewDraft(v.ID, cmd.Session.UserName, cand)
	if err != nil {
		return nil, err
	}
	if err := draft.Submit(booking.OpCreate); err != nil {
		return nil, err
	}

	created, err := h.Gateway.Create(ctx, cmd.Session.Token, v.ID, cand)
	if err != nil {
		_ = draft.Fail()
		return nil, err
	}
	if err := draft.Complete(created.ID, h.now()); err != nil {
		return nil, err
	}
	if !created.CreatedAt.IsZero() {
		draft.CreatedAt = created.CreatedAt
		draft.UpdatedAt = created.UpdatedAt
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, string(draft.ID), draft.PendingEvents()); err != nil {
		return nil, err
	}
	draft.ClearEvents()

	collection := booking.ApplyResult(stays, booking.OpCreate, draft)
	if h.Collections != nil {
		if err := h.Collections.Put(ctx, cmd.Session.UserName, v.ID, collection); err != nil {
			return nil, err
		}
	}

	summary := summarize(draft)
	return &CreateStayResult{
		Validation: viewOf(res),
		Stay:       &summary,
		Collection: summarizeAll(collection),
	}, nil
}

func (h *CreateStayHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CreateStayCommand, *CreateStayResult] = (*CreateStayHandler)(nil)
var _ middleware.IdempotentCommand = CreateStayCommand{}
