package clock

import "time"

// Clock supplies the current time. Production code uses System; tests inject
// a fixed clock so time-based predicates stay deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the wall clock in UTC.
func System() Clock { return systemClock{} }

// Fixed is a Clock pinned to a settable instant.
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time { return f.Instant }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.Instant = f.Instant.Add(d) }

// AuctionExpired reports whether an auction's end time has passed. A nil end
// time never expires.
func AuctionExpired(c Clock, end *time.Time) bool {
	if end == nil {
		return false
	}
	return !c.Now().Before(*end)
}

// WithinGrace reports whether a reservation made at reservedAt is still
// inside the grace window. A nil reservedAt counts as within grace so the
// reaper never reclaims an unreserved listing.
func WithinGrace(c Clock, reservedAt *time.Time, grace time.Duration) bool {
	if reservedAt == nil {
		return true
	}
	return c.Now().Sub(*reservedAt) <= grace
}
