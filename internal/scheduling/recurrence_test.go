package scheduling

import (
	"reflect"
	"testing"
	"time"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadZone(name)
	if err != nil {
		t.Fatalf("load zone %s: %v", name, err)
	}
	return loc
}

func TestExpandDaily(t *testing.T) {
	start := time.Date(2024, 11, 6, 6, 15, 0, 0, time.UTC)
	end := time.Date(2024, 11, 6, 7, 15, 0, 0, time.UTC)
	boundary := time.Date(2024, 11, 9, 6, 15, 0, 0, time.UTC)

	occs := Expand(start, end, model.RecurrenceDaily, boundary, time.UTC)
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}
	for i, occ := range occs {
		wantStart := start.AddDate(0, 0, i)
		if !occ.StartUTC.Equal(wantStart) {
			t.Errorf("occurrence %d: start %v, want %v", i, occ.StartUTC, wantStart)
		}
		if got := occ.EndUTC.Sub(occ.StartUTC); got != time.Hour {
			t.Errorf("occurrence %d: duration %v, want 1h", i, got)
		}
		if !occ.StartUTC.Before(boundary) || !occ.EndUTC.Before(boundary) {
			t.Errorf("occurrence %d crosses the boundary", i)
		}
	}
}

func TestExpandWeekly(t *testing.T) {
	start := time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	boundary := start.AddDate(0, 0, 22) // covers weeks 0, 1, 2

	occs := Expand(start, end, model.RecurrenceWeekly, boundary, time.UTC)
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}
	if !occs[2].StartUTC.Equal(start.AddDate(0, 0, 14)) {
		t.Errorf("third occurrence at %v", occs[2].StartUTC)
	}
}

func TestExpandDailyPreservesWallClockAcrossDST(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	// 06:15 local on Nov 1 2024 is EDT (UTC-4); the zone falls back to EST
	// (UTC-5) on Nov 3.
	start := time.Date(2024, 11, 1, 6, 15, 0, 0, ny)
	end := start.Add(time.Hour)
	boundary := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)

	occs := Expand(start.UTC(), end.UTC(), model.RecurrenceDaily, boundary, ny)
	if len(occs) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occs))
	}
	for i, occ := range occs {
		if got := occ.StartLocal[11:]; got != "06:15:00" {
			t.Errorf("occurrence %d: local start %q, want 06:15:00 wall clock", i, occ.StartLocal)
		}
	}
	// Before the transition the instant is 10:15 UTC, after it 11:15 UTC.
	if got := occs[0].StartUTC.Hour(); got != 10 {
		t.Errorf("pre-DST occurrence at %02d:15 UTC, want 10:15", got)
	}
	if got := occs[4].StartUTC.Hour(); got != 11 {
		t.Errorf("post-DST occurrence at %02d:15 UTC, want 11:15", got)
	}
}

func TestExpandMonthlyClampsDayOfMonth(t *testing.T) {
	start := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	boundary := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	occs := Expand(start, end, model.RecurrenceMonthly, boundary, time.UTC)
	if len(occs) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(occs))
	}
	wantDays := []int{31, 29, 29, 29} // Jan 31 clamps to Feb 29 and stays there
	for i, occ := range occs {
		if occ.StartUTC.Day() != wantDays[i] {
			t.Errorf("occurrence %d on day %d, want %d", i, occ.StartUTC.Day(), wantDays[i])
		}
	}
}

func TestExpandFirstOccurrenceAtBoundary(t *testing.T) {
	start := time.Date(2024, 11, 6, 6, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// Boundary equal to the first end: the whole series, first occurrence
	// included, must clear the boundary strictly, so nothing is emitted.
	if occs := Expand(start, end, model.RecurrenceDaily, end, time.UTC); len(occs) != 0 {
		t.Errorf("boundary at first end: got %d occurrences, want 0", len(occs))
	}
	if occs := Expand(start, end, model.RecurrenceDaily, start, time.UTC); len(occs) != 0 {
		t.Errorf("boundary at first start: got %d occurrences, want 0", len(occs))
	}
	// One millisecond past the first end admits exactly the first occurrence.
	occs := Expand(start, end, model.RecurrenceDaily, end.Add(time.Millisecond), time.UTC)
	if len(occs) != 1 {
		t.Errorf("boundary just past first end: got %d occurrences, want 1", len(occs))
	}
}

func TestExpandIsPure(t *testing.T) {
	kolkata := mustZone(t, "Asia/Kolkata")
	start := time.Date(2024, 11, 6, 6, 15, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	boundary := start.AddDate(0, 2, 0)

	a := Expand(start, end, model.RecurrenceWeekly, boundary, kolkata)
	b := Expand(start, end, model.RecurrenceWeekly, boundary, kolkata)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different series")
	}
}
