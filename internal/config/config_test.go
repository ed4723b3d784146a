package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPolicyMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.WeeklyLimit != 3 {
		t.Errorf("weekly limit %d", p.WeeklyLimit)
	}
	if len(p.RestrictedCountries) != 2 {
		t.Errorf("restricted countries %v", p.RestrictedCountries)
	}
	if p.WeekStartDay() != time.Sunday {
		t.Errorf("week start %v", p.WeekStartDay())
	}
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	data := "restricted_countries: [Norway]\nweekly_limit: 5\nweek_start: monday\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.WeeklyLimit != 5 {
		t.Errorf("weekly limit %d", p.WeeklyLimit)
	}
	if p.RestrictedCountries[0] != "Norway" {
		t.Errorf("countries %v", p.RestrictedCountries)
	}
	if p.WeekStartDay() != time.Monday {
		t.Errorf("week start %v", p.WeekStartDay())
	}
}

func TestLoadPolicyNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("week_start: friday\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.WeekStart != "sunday" {
		t.Errorf("unknown week start should fall back to sunday, got %q", p.WeekStart)
	}
	if p.WeeklyLimit != 3 || len(p.RestrictedCountries) != 2 {
		t.Errorf("defaults not applied: %+v", p)
	}
}
