package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates. The remote booking store
// serializes date fields without a time component, and every date crossing
// the process boundary must round-trip through this form.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("dates: invalid calendar date")

// Date is a calendar date with day granularity. The zero value is the zero
// date. Internally the value is pinned to midnight UTC so comparisons never
// depend on the local timezone or a time-of-day component.
type Date struct {
	t time.Time
}

// New builds a Date from year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a timestamp to its calendar date. The year, month and
// day are taken in the timestamp's own location before normalizing, so a
// local-midnight value stays on the same calendar day.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse reads a Date from its YYYY-MM-DD wire form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// MustParse is Parse that panics; for fixtures and tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the underlying midnight-UTC timestamp.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// AddDays steps the date by whole calendar days. AddDate is used rather than
// a 24h duration so stepping stays correct across daylight-saving shifts.
func (d Date) AddDays(n int) Date {
	return FromTime(d.t.AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// DaysUntil returns the calendar-day difference to other. Negative when
// other is earlier. Both values sit at midnight UTC, so the division is exact.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// MarshalJSON writes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string. An empty string decodes
// to the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is an inclusive span of calendar dates.
type Range struct {
	From Date
	To   Date
}

// NewRange builds an inclusive date range. Ordering is not enforced here;
// callers that require From <= To check Valid and report their own reason.
func NewRange(from, to Date) Range {
	return Range{From: from, To: to}
}

// Valid reports whether both endpoints are set and ordered.
func (r Range) Valid() bool {
	return !r.From.IsZero() && !r.To.IsZero() && !r.From.After(r.To)
}

// Days returns the calendar-day span between the endpoints. A same-day range
// spans zero days.
func (r Range) Days() int {
	return r.From.DaysUntil(r.To)
}

// Contains reports whether d falls inside the range, endpoints included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Overlaps reports whether any calendar date belongs to both ranges.
func (r Range) Overlaps(other Range) bool {
	return !r.To.Before(other.From) && !r.From.After(other.To)
}

// Each calls fn for every date in the range in order, stepping by calendar
// days. Iteration stops early when fn returns false.
func (r Range) Each(fn func(Date) bool) {
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		if !fn(d) {
			return
		}
	}
}
