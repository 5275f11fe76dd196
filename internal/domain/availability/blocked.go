package availability

import (
	"sort"

	"staybook/internal/domain/shared/dates"
)

// Booking is the slice of a stored booking the blocked-date computation needs.
type Booking struct {
	ID    string
	Range dates.Range
}

// BlockedDateSet is the set of calendar dates already covered by existing
// bookings for one venue. It is a derived, read-only value: rebuild it
// whenever the booking collection or the excluded booking changes. The
// representation is a sorted list of merged, non-overlapping inclusive
// ranges, so membership and overlap checks are binary searches rather than
// per-day set lookups.
type BlockedDateSet struct {
	blocks  []dates.Range
	skipped int
}

// Build derives the blocked set from a venue's bookings. A booking whose id
// equals exclude contributes nothing; pass the id of the booking being edited
// so its own dates do not block the edit. Records with missing or inverted
// dates are skipped instead of failing the whole build; the count of skipped
// records stays observable through Skipped.
func Build(bookings []Booking, exclude string) *BlockedDateSet {
	set := &BlockedDateSet{}
	ranges := make([]dates.Range, 0, len(bookings))
	for _, b := range bookings {
		if exclude != "" && b.ID == exclude {
			continue
		}
		if !b.Range.Valid() {
			set.skipped++
			continue
		}
		ranges = append(ranges, b.Range)
	}
	set.blocks = merge(ranges)
	return set
}

// merge sorts ranges and coalesces overlapping or day-adjacent spans.
func merge(ranges []dates.Range) []dates.Range {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].From.Equal(ranges[j].From) {
			return ranges[i].To.Before(ranges[j].To)
		}
		return ranges[i].From.Before(ranges[j].From)
	})
	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		// Adjacent days blockade the same span at day granularity.
		if !r.From.After(last.To.AddDays(1)) {
			if r.To.After(last.To) {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Contains reports whether d is a blocked date.
func (s *BlockedDateSet) Contains(d dates.Date) bool {
	idx := sort.Search(len(s.blocks), func(i int) bool {
		return !s.blocks[i].To.Before(d)
	})
	return idx < len(s.blocks) && s.blocks[idx].Contains(d)
}

// Overlaps reports whether any date in r is blocked.
func (s *BlockedDateSet) Overlaps(r dates.Range) bool {
	idx := sort.Search(len(s.blocks), func(i int) bool {
		return !s.blocks[i].To.Before(r.From)
	})
	return idx < len(s.blocks) && s.blocks[idx].Overlaps(r)
}

// Blocks returns the merged blocked ranges in order.
func (s *BlockedDateSet) Blocks() []dates.Range {
	out := make([]dates.Range, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Dates materializes every blocked date in order. Calendar UIs that disable
// individual days consume this; validation goes through Contains/Overlaps.
func (s *BlockedDateSet) Dates() []dates.Date {
	var out []dates.Date
	for _, b := range s.blocks {
		b.Each(func(d dates.Date) bool {
			out = append(out, d)
			return true
		})
	}
	return out
}

// Skipped returns the number of malformed booking records dropped during the
// build.
func (s *BlockedDateSet) Skipped() int { return s.skipped }

// Empty reports whether no dates are blocked.
func (s *BlockedDateSet) Empty() bool { return len(s.blocks) == 0 }
