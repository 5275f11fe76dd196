package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/app/commands"
	availabilityapp "staybook/internal/app/handlers/availability"
	staysapp "staybook/internal/app/handlers/stays"
	"staybook/internal/app/queries"
	"staybook/internal/app/session"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dates"
	"staybook/internal/domain/venue"
	"staybook/internal/infra/holidaze"
)

type StayHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type stayRequest struct {
	DateFrom dates.Date `json:"date_from"`
	DateTo   dates.Date `json:"date_to"`
	Guests   int        `json:"guests"`
	VenueID  string     `json:"venue_id"`
	StayID   string     `json:"stay_id"`
}

// Preview validates a candidate without submitting. Rejections come back
// with 200 and ok=false; the caller adjusts and retries locally.
func (h StayHandler) Preview(c *gin.Context) {
	var req stayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := staysapp.PreviewStayQuery{
		VenueID:       c.Param("id"),
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
		Guests:        req.Guests,
		ExcludeStayID: req.StayID,
	}
	result, err := queries.Ask[staysapp.PreviewStayQuery, *staysapp.PreviewStayResult](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h StayHandler) Create(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req stayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := staysapp.CreateStayCommand{
		CommandID:       uuid.NewString(),
		VenueID:         c.Param("id"),
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		Guests:          req.Guests,
		Session:         sess,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[staysapp.CreateStayCommand, *staysapp.CreateStayResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	if !result.Validation.OK {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h StayHandler) Update(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req stayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := staysapp.UpdateStayCommand{
		CommandID:       uuid.NewString(),
		StayID:          c.Param("id"),
		VenueID:         req.VenueID,
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		Guests:          req.Guests,
		Session:         sess,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[staysapp.UpdateStayCommand, *staysapp.UpdateStayResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	if !result.Validation.OK {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h StayHandler) Delete(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	cmd := staysapp.DeleteStayCommand{
		CommandID:       uuid.NewString(),
		StayID:          c.Param("id"),
		VenueID:         c.Query("venue_id"),
		Session:         sess,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[staysapp.DeleteStayCommand, *staysapp.DeleteStayResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	var remote *holidaze.RemoteError
	switch {
	case errors.Is(err, session.ErrAuthRequired), errors.Is(err, holidaze.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
	case errors.Is(err, holidaze.ErrVenueNotFound), errors.Is(err, venue.ErrVenueNotFound),
		errors.Is(err, holidaze.ErrNotFound), errors.Is(err, booking.ErrStayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availabilityapp.ErrVenueIDRequired), errors.Is(err, staysapp.ErrVenueIDRequired),
		errors.Is(err, staysapp.ErrStayIDRequired), errors.Is(err, booking.ErrInvalidGuests):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &remote):
		c.JSON(http.StatusBadGateway, gin.H{"error": remote.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ StayHTTP = StayHandler{}
