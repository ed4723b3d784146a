// Package scheduling holds the temporal core: normalizing caller-supplied
// instants, rendering civil time, and expanding recurrence rules. Everything
// here is pure; no storage, no clocks.
package scheduling

import (
	"fmt"
	"time"
)

// utcLayout is the only accepted encoding for caller-supplied instants:
// RFC3339 with milliseconds and a literal Z. Offset forms like +05:30 are
// rejected even though they denote valid instants.
const utcLayout = "2006-01-02T15:04:05.000Z"

// localLayout is the canonical rendering of civil time in an event's zone.
const localLayout = "2006-01-02 15:04:05"

type InvalidTimezoneError struct {
	Zone string
}

func (e *InvalidTimezoneError) Error() string {
	return fmt.Sprintf("time zone %q is not a known IANA zone", e.Zone)
}

type NotUTCError struct {
	Value string
}

func (e *NotUTCError) Error() string {
	return fmt.Sprintf("%q is not a strict UTC instant (expected e.g. 2024-11-06T06:15:00.000Z)", e.Value)
}

var ErrEndNotAfterStart = fmt.Errorf("end time must be after start time")

// LoadZone resolves an IANA zone identifier.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, &InvalidTimezoneError{Zone: name}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &InvalidTimezoneError{Zone: name}
	}
	return loc, nil
}

// ParseUTC parses a caller-supplied instant and enforces the strict UTC
// encoding by round-trip: the parsed instant must re-serialize to the exact
// input string.
func ParseUTC(s string) (time.Time, error) {
	t, err := time.Parse(utcLayout, s)
	if err != nil {
		return time.Time{}, &NotUTCError{Value: s}
	}
	if t.Format(utcLayout) != s {
		return time.Time{}, &NotUTCError{Value: s}
	}
	return t.UTC(), nil
}

// FormatUTC renders an instant in the strict UTC encoding. By construction
// ParseUTC(FormatUTC(t)) succeeds for any t.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(utcLayout)
}

// FormatLocal renders an instant as civil time in loc.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(localLayout)
}

// ValidateOrder enforces the strict interval invariant start < end.
func ValidateOrder(start, end time.Time) error {
	if !end.After(start) {
		return ErrEndNotAfterStart
	}
	return nil
}
