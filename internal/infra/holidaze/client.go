package holidaze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"staybook/internal/app/ports"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/venue"
)

const apiKeyHeader = "X-Noroff-API-Key"

// Client talks to the remote booking store over JSON/HTTPS. Reads carry the
// API key; mutations additionally carry the caller's bearer token. The
// client owns serialization both ways: every date crosses the wire as
// YYYY-MM-DD no matter the caller's local timezone.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Venue fetches a venue, with its bookings embedded when withStays is set.
func (c *Client) Venue(ctx context.Context, id venue.VenueID, withStays bool) (*venue.Venue, []*booking.Stay, error) {
	endpoint := fmt.Sprintf("%s/holidaze/venues/%s", c.baseURL, url.PathEscape(string(id)))
	if withStays {
		endpoint += "?_bookings=true"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &RemoteError{Op: "fetch venue", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, ErrVenueNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, c.remoteError("fetch venue", resp)
	}

	var envelope venueEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, nil, &RemoteError{Op: "fetch venue", Message: err.Error()}
	}
	v := mapVenue(envelope.Data)
	stays := make([]*booking.Stay, 0, len(envelope.Data.Bookings))
	for _, b := range envelope.Data.Bookings {
		stays = append(stays, mapStay(b, v.ID))
	}
	return v, stays, nil
}

// Create submits a new booking scoped to a venue.
func (c *Client) Create(ctx context.Context, token string, venueID venue.VenueID, cand booking.Candidate) (*booking.Stay, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}
	body := createBookingRequest{
		DateFrom: cand.Range.From.String(),
		DateTo:   cand.Range.To.String(),
		Guests:   cand.Guests,
		VenueID:  string(venueID),
	}
	payload, err := c.do(ctx, http.MethodPost, c.baseURL+"/holidaze/bookings", token, body, "create booking")
	if err != nil {
		return nil, err
	}
	return mapStay(payload, venueID), nil
}

// Update edits an existing booking. The venue reference is immutable and
// never sent.
func (c *Client) Update(ctx context.Context, token string, id booking.StayID, cand booking.Candidate) (*booking.Stay, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}
	body := updateBookingRequest{
		DateFrom: cand.Range.From.String(),
		DateTo:   cand.Range.To.String(),
		Guests:   cand.Guests,
	}
	endpoint := c.baseURL + "/holidaze/bookings/" + url.PathEscape(string(id))
	payload, err := c.do(ctx, http.MethodPut, endpoint, token, body, "update booking")
	if err != nil {
		return nil, err
	}
	return mapStay(payload, ""), nil
}

// Delete removes a booking. A 404 becomes ErrNotFound so staleness reaches
// the caller instead of masquerading as success.
func (c *Client) Delete(ctx context.Context, token string, id booking.StayID) error {
	if token == "" {
		return ErrAuthRequired
	}
	endpoint := c.baseURL + "/holidaze/bookings/" + url.PathEscape(string(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: "delete booking", Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return c.remoteError("delete booking", resp)
	}
	return nil
}

// do issues a JSON mutation and decodes the booking payload from the data
// envelope.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body any, op string) (bookingPayload, error) {
	var zero bookingPayload
	encoded, err := json.Marshal(body)
	if err != nil {
		return zero, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return zero, err
	}
	c.setHeaders(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &RemoteError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return zero, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, c.remoteError(op, resp)
	}

	var envelope bookingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return zero, &RemoteError{Op: op, Message: err.Error()}
	}
	return envelope.Data, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// remoteError extracts the server message from the error payload, falling
// back to a generic per-operation message.
func (c *Client) remoteError(op string, resp *http.Response) error {
	message := "booking failed"
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil {
			if m := envelope.message(); m != "" {
				message = m
			}
		}
	}
	if c.logger != nil {
		c.logger.Warn("booking store rejected request", "op", op, "status", resp.StatusCode, "message", message)
	}
	return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: message}
}

var (
	_ ports.VenueDirectory = (*Client)(nil)
	_ ports.StayGateway    = (*Client)(nil)
)
