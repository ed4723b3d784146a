package service

import "time"

// Policy holds the externally adjustable scheduling rules: which countries
// are capped, how many events per week the cap allows, and which weekday a
// week starts on.
type Policy struct {
	RestrictedCountries []string
	WeeklyLimit         int
	WeekStart           time.Weekday
}

func (p Policy) Restricted(country string) bool {
	for _, c := range p.RestrictedCountries {
		if c == country {
			return true
		}
	}
	return false
}

// startOfWeek computes the start of t's calendar week in loc (midnight on
// the policy's first weekday), returned as a UTC instant.
func (p Policy) startOfWeek(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	back := (int(lt.Weekday()) - int(p.WeekStart) + 7) % 7
	return time.Date(lt.Year(), lt.Month(), lt.Day()-back, 0, 0, 0, 0, loc).UTC()
}
