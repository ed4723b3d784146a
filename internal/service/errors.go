package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

// Domain errors. Every failure the service reports is one of these kinds or
// a scheduling error (invalid zone, non-UTC instant, bad interval ordering).
var (
	ErrNotFound             = errors.New("event or participant not found")
	ErrUnauthorized         = errors.New("only the event creator can perform this action")
	ErrIncompleteRecurrence = errors.New("for a recurring event, both recurrence_type and recurrence_end_date are required")
)

// ConflictError reports a temporal overlap with an existing event on the
// creator's schedule.
type ConflictError struct {
	Conflict *model.Event
}

func (e *ConflictError) Error() string {
	return "this event overlaps with an existing event in the user's schedule"
}

// CountryLimitError reports that the rolling weekly quota for a restricted
// country is exhausted.
type CountryLimitError struct {
	Country string
	Limit   int
}

func (e *CountryLimitError) Error() string {
	return fmt.Sprintf("event creation limit reached for %s, only %d events per week allowed", e.Country, e.Limit)
}

// InvalidRSVPStatusError reports a status outside the accepted set.
type InvalidRSVPStatusError struct {
	Status string
}

func (e *InvalidRSVPStatusError) Error() string {
	return fmt.Sprintf("invalid rsvp status %q, must be one of accepted, declined, pending", e.Status)
}

// DuplicateParticipantError reports participant emails repeated in a create
// payload or already attached to the event.
type DuplicateParticipantError struct {
	Emails []string
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("participants already exist for this event: %s", strings.Join(e.Emails, ", "))
}
