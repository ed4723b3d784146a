package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestParseUTC(t *testing.T) {
	got, err := ParseUTC("2024-11-06T06:15:00.000Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 11, 6, 6, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseUTCRejectsNonStrictEncodings(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"offset form", "2024-11-06T11:45:00.000+05:30"},
		{"no milliseconds", "2024-11-06T06:15:00Z"},
		{"lowercase z", "2024-11-06T06:15:00.000z"},
		{"date only", "2024-11-06"},
		{"garbage", "next tuesday"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUTC(tt.value)
			if err == nil {
				t.Fatalf("expected error for %q", tt.value)
			}
			var nu *NotUTCError
			if !errors.As(err, &nu) {
				t.Errorf("expected NotUTCError, got %T", err)
			}
		})
	}
}

func TestFormatUTCRoundTrip(t *testing.T) {
	// Round-trip law: any instant serializes to something ParseUTC accepts.
	times := []time.Time{
		time.Now(),
		time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC),
		time.Date(1999, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 5*3600)),
	}
	for _, in := range times {
		s := FormatUTC(in)
		out, err := ParseUTC(s)
		if err != nil {
			t.Fatalf("round trip of %v via %q: %v", in, s, err)
		}
		if !out.Equal(in.Truncate(time.Millisecond)) {
			t.Errorf("round trip of %v: got %v", in, out)
		}
	}
}

func TestLoadZone(t *testing.T) {
	if _, err := LoadZone("Asia/Kolkata"); err != nil {
		t.Errorf("valid zone rejected: %v", err)
	}
	for _, bad := range []string{"", "Mars/Olympus", "UTC+5"} {
		_, err := LoadZone(bad)
		var iz *InvalidTimezoneError
		if !errors.As(err, &iz) {
			t.Errorf("LoadZone(%q): expected InvalidTimezoneError, got %v", bad, err)
		}
	}
}

func TestFormatLocal(t *testing.T) {
	loc, _ := LoadZone("Asia/Kolkata")
	// 06:15 UTC is 11:45 in Kolkata (+05:30).
	at := time.Date(2024, 11, 6, 6, 15, 0, 0, time.UTC)
	if got := FormatLocal(at, loc); got != "2024-11-06 11:45:00" {
		t.Errorf("got %q", got)
	}
}

func TestValidateOrder(t *testing.T) {
	at := time.Date(2024, 11, 6, 6, 15, 0, 0, time.UTC)
	if err := ValidateOrder(at, at.Add(time.Hour)); err != nil {
		t.Errorf("valid interval rejected: %v", err)
	}
	if err := ValidateOrder(at, at); !errors.Is(err, ErrEndNotAfterStart) {
		t.Errorf("equal endpoints: got %v", err)
	}
	if err := ValidateOrder(at, at.Add(-time.Minute)); !errors.Is(err, ErrEndNotAfterStart) {
		t.Errorf("reversed interval: got %v", err)
	}
}
