package scheduling

import (
	"time"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

// Expand generates the occurrence series for a recurring event.
//
// The cursor pair starts at (start, end) and is stepped by one calendar unit
// at a time in loc, so a step across a DST transition keeps the local
// wall-clock time rather than a fixed UTC offset. An occurrence is emitted
// only while both cursor ends are strictly before the exclusive boundary;
// that includes the first occurrence, so a series whose first interval
// touches the boundary is empty.
//
// The result is a pure function of its inputs.
func Expand(start, end time.Time, kind string, boundary time.Time, loc *time.Location) []model.Occurrence {
	curStart := start.In(loc)
	curEnd := end.In(loc)

	var out []model.Occurrence
	for curStart.Before(boundary) && curEnd.Before(boundary) {
		out = append(out, model.Occurrence{
			StartUTC:   curStart.UTC(),
			EndUTC:     curEnd.UTC(),
			StartLocal: FormatLocal(curStart, loc),
			EndLocal:   FormatLocal(curEnd, loc),
			TimeZone:   loc.String(),
		})
		curStart = step(curStart, kind, loc)
		curEnd = step(curEnd, kind, loc)
	}
	return out
}

// step advances t by one calendar unit of the given kind, operating on the
// civil fields of t in loc.
func step(t time.Time, kind string, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	hour, min, sec := t.In(loc).Clock()

	switch kind {
	case model.RecurrenceDaily:
		day++
	case model.RecurrenceWeekly:
		day += 7
	case model.RecurrenceMonthly:
		month++
		if month > time.December {
			month = time.January
			year++
		}
		// Clamp to the last day of the target month: Jan 31 + 1 month is
		// Feb 28 (or 29), not Mar 2.
		if last := daysIn(year, month); day > last {
			day = last
		}
	}
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), loc)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
