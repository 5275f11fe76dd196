package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func TestCreateLifecycle(t *testing.T) {
	s, err := NewDraft("v-1", "alice", Candidate{Range: rng("2026-07-10", "2026-07-12"), Guests: 2})
	require.NoError(t, err)
	require.Equal(t, StateDraft, s.State)
	require.Empty(t, s.ID)

	require.NoError(t, s.Submit(OpCreate))
	require.Equal(t, StatePending, s.State)
	require.True(t, s.InFlight())

	require.NoError(t, s.Complete("bk-42", testNow))
	require.Equal(t, StateConfirmed, s.State)
	require.Equal(t, StayID("bk-42"), s.ID)
	require.Equal(t, testNow, s.CreatedAt)
	require.True(t, s.Active())

	evts := s.PendingEvents()
	require.Len(t, evts, 1)
	require.Equal(t, "stay.created", evts[0].Name())
}

func TestNewDraftRejectsNonPositiveGuests(t *testing.T) {
	_, err := NewDraft("v-1", "alice", Candidate{Range: rng("2026-07-10", "2026-07-12"), Guests: 0})
	require.ErrorIs(t, err, ErrInvalidGuests)
}

func TestUpdateLifecycle(t *testing.T) {
	s := Restore("bk-1", "v-1", "alice", rng("2026-07-10", "2026-07-12"), 2, testNow, testNow)

	require.NoError(t, s.BeginEdit(Candidate{Range: rng("2026-07-11", "2026-07-14"), Guests: 3}))
	require.Equal(t, StateEditing, s.State)
	require.Equal(t, 3, s.Guests)

	require.NoError(t, s.Submit(OpUpdate))
	later := testNow.Add(time.Hour)
	require.NoError(t, s.Complete(s.ID, later))
	require.Equal(t, StateConfirmed, s.State)
	require.Equal(t, later, s.UpdatedAt)

	evts := s.PendingEvents()
	require.Len(t, evts, 1)
	require.Equal(t, "stay.updated", evts[0].Name())
}

func TestDeleteLifecycle(t *testing.T) {
	s := Restore("bk-1", "v-1", "alice", rng("2026-07-10", "2026-07-12"), 2, testNow, testNow)

	require.NoError(t, s.Submit(OpDelete))
	require.NoError(t, s.Complete(s.ID, testNow))
	require.Equal(t, StateDeleted, s.State)
	require.False(t, s.Active())

	evts := s.PendingEvents()
	require.Len(t, evts, 1)
	require.Equal(t, "stay.deleted", evts[0].Name())
}

func TestFailRevertsToPriorState(t *testing.T) {
	s := Restore("bk-1", "v-1", "alice", rng("2026-07-10", "2026-07-12"), 2, testNow, testNow)
	require.NoError(t, s.BeginEdit(Candidate{Range: rng("2026-07-11", "2026-07-14"), Guests: 3}))
	require.NoError(t, s.Submit(OpUpdate))

	require.NoError(t, s.Fail())
	require.Equal(t, StateEditing, s.State)
	require.False(t, s.InFlight())
	require.Empty(t, s.PendingEvents(), "a failed request records nothing")

	// The stay can be resubmitted after a failure.
	require.NoError(t, s.Submit(OpUpdate))
}

func TestSubmitRejectsWrongStates(t *testing.T) {
	draft, err := NewDraft("v-1", "alice", Candidate{Range: rng("2026-07-10", "2026-07-12"), Guests: 2})
	require.NoError(t, err)
	require.ErrorIs(t, draft.Submit(OpUpdate), ErrInvalidState)
	require.ErrorIs(t, draft.Submit(OpDelete), ErrInvalidState)

	confirmed := Restore("bk-1", "v-1", "alice", rng("2026-07-10", "2026-07-12"), 2, testNow, testNow)
	require.ErrorIs(t, confirmed.Submit(OpCreate), ErrInvalidState)

	require.NoError(t, confirmed.Submit(OpDelete))
	require.ErrorIs(t, confirmed.Submit(OpDelete), ErrInvalidState, "one request in flight at a time")
}

func TestBeginEditRequiresConfirmed(t *testing.T) {
	draft, err := NewDraft("v-1", "alice", Candidate{Range: rng("2026-07-10", "2026-07-12"), Guests: 2})
	require.NoError(t, err)
	require.ErrorIs(t, draft.BeginEdit(Candidate{Range: rng("2026-07-11", "2026-07-12"), Guests: 1}), ErrInvalidState)
}

func TestCompleteRequiresPending(t *testing.T) {
	s := Restore("bk-1", "v-1", "alice", rng("2026-07-10", "2026-07-12"), 2, testNow, testNow)
	require.ErrorIs(t, s.Complete(s.ID, testNow), ErrInvalidState)
	require.ErrorIs(t, s.Fail(), ErrInvalidState)
}
