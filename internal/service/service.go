// Package service implements the event scheduling core: the creation
// pipeline over single or recurring occurrences, overlap and country-limit
// enforcement, and the edit/RSVP/delete operations. Persistence is behind
// the Store interface so tests run against an in-memory fake.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/scheduling"
)

type Service struct {
	store  Store
	policy Policy
}

func New(store Store, policy Policy) *Service {
	return &Service{store: store, policy: policy}
}

// CreateEvent validates the base interval and the participant list (a
// repeated email rejects the whole request), expands the recurrence rule if
// one is present, and processes the resulting occurrences strictly in order.
// Each accepted occurrence is persisted before the next one is checked, so
// later occurrences in the same batch see the earlier ones. Per-occurrence
// failures are recorded in their outcome and processing continues.
//
// recurring reports whether a recurrence rule was in play; when false the
// outcome slice holds exactly one element. A non-nil error means the request
// failed as a whole and no occurrence was processed.
//
// Note: there is no isolation between the overlap check and the insert
// across concurrent requests; two simultaneous creates for the same creator
// can both pass the check and both commit.
func (s *Service) CreateEvent(ctx context.Context, in model.CreateEventInput) (outcomes []model.Outcome, recurring bool, err error) {
	loc, err := scheduling.LoadZone(in.TimeZone)
	if err != nil {
		return nil, false, err
	}
	start, err := scheduling.ParseUTC(in.StartTime)
	if err != nil {
		return nil, false, err
	}
	end, err := scheduling.ParseUTC(in.EndTime)
	if err != nil {
		return nil, false, err
	}
	if err := scheduling.ValidateOrder(start, end); err != nil {
		return nil, false, err
	}
	if dups := duplicateEmails(in.Participants); len(dups) > 0 {
		return nil, false, &DuplicateParticipantError{Emails: dups}
	}

	recurring = in.RecurrenceType != "" && in.RecurrenceEndDate != ""
	if (in.RecurrenceType != "") != (in.RecurrenceEndDate != "") {
		return nil, false, ErrIncompleteRecurrence
	}

	var occs []model.Occurrence
	var boundary time.Time
	if recurring {
		boundary, err = scheduling.ParseUTC(in.RecurrenceEndDate)
		if err != nil {
			return nil, false, err
		}
		occs = scheduling.Expand(start, end, in.RecurrenceType, boundary, loc)
	} else {
		occs = []model.Occurrence{{
			StartUTC:   start,
			EndUTC:     end,
			StartLocal: scheduling.FormatLocal(start, loc),
			EndLocal:   scheduling.FormatLocal(end, loc),
			TimeZone:   in.TimeZone,
		}}
	}

	for _, occ := range occs {
		outcome, err := s.processOccurrence(ctx, in, occ, loc, recurring, boundary)
		if err != nil {
			return nil, recurring, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, recurring, nil
}

// processOccurrence runs the per-occurrence checks and persists on success.
// The returned error is reserved for store failures; domain rejections land
// in the outcome.
func (s *Service) processOccurrence(ctx context.Context, in model.CreateEventInput, occ model.Occurrence, loc *time.Location, recurring bool, boundary time.Time) (model.Outcome, error) {
	if err := scheduling.ValidateOrder(occ.StartUTC, occ.EndUTC); err != nil {
		return model.Outcome{Occurrence: occ, Err: err}, nil
	}

	conflict, err := s.store.FindOverlapping(ctx, in.CreatorEmail, occ.StartUTC, occ.EndUTC)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("find overlapping: %w", err)
	}
	if conflict != nil {
		return model.Outcome{Occurrence: occ, Err: &ConflictError{Conflict: conflict}}, nil
	}

	if s.policy.Restricted(in.Country) {
		weekStart := s.policy.startOfWeek(occ.StartUTC, loc)
		count, err := s.store.CountEventsSince(ctx, in.CreatorEmail, weekStart)
		if err != nil {
			return model.Outcome{}, fmt.Errorf("count events since week start: %w", err)
		}
		if count >= s.policy.WeeklyLimit {
			return model.Outcome{Occurrence: occ, Err: &CountryLimitError{Country: in.Country, Limit: s.policy.WeeklyLimit}}, nil
		}
	}

	event := &model.Event{
		ID:             uuid.New().String(),
		CreatorEmail:   in.CreatorEmail,
		Country:        in.Country,
		Title:          in.Title,
		Description:    in.Description,
		StartTime:      occ.StartUTC,
		EndTime:        occ.EndUTC,
		StartTimeLocal: occ.StartLocal,
		EndTimeLocal:   occ.EndLocal,
		TimeZone:       in.TimeZone,
		Location:       in.Location,
	}
	if recurring {
		event.RecurrenceType = in.RecurrenceType
		b := boundary
		event.RecurrenceEndDate = &b
	}

	participants, err := s.store.CreateEvent(ctx, event, in.Participants)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("create event: %w", err)
	}
	return model.Outcome{Occurrence: occ, Event: event, Participants: participants}, nil
}

// duplicateEmails returns the emails that appear more than once, each
// reported once, in first-occurrence order.
func duplicateEmails(in []model.ParticipantInput) []string {
	count := make(map[string]int, len(in))
	for _, p := range in {
		count[p.Email]++
	}
	var dups []string
	for _, p := range in {
		if count[p.Email] > 1 {
			dups = append(dups, p.Email)
			count[p.Email] = 0
		}
	}
	return dups
}

// GetEvent returns an active event with its participants.
func (s *Service) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.store.FindActiveEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if err := s.attachParticipants(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns all active events with participants.
func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.store.ListActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range events {
		if err := s.attachParticipants(ctx, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// ListEventsByUser returns active events where the user is the creator or a
// participant.
func (s *Service) ListEventsByUser(ctx context.Context, email string) ([]model.Event, error) {
	events, err := s.store.ListEventsForUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list events for user: %w", err)
	}
	for i := range events {
		if err := s.attachParticipants(ctx, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// EditEvent overwrites event fields on behalf of the creator. Both the
// creator email and the country must match the stored event. When any of
// the time fields or the zone is supplied the interval is re-normalized and
// the local renderings recomputed (a zone change alone re-renders the
// stored instants), but overlap and country-limit checks deliberately do
// not re-run on edit; an edit can therefore introduce a conflict or exceed
// the weekly quota. That gap is part of the contract, not an oversight.
func (s *Service) EditEvent(ctx context.Context, id string, in model.EditEventInput) (*model.Event, error) {
	event, err := s.store.FindActiveEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.CreatorEmail != in.CreatorEmail || event.Country != in.Country {
		return nil, ErrUnauthorized
	}

	if in.StartTime != nil || in.EndTime != nil || in.TimeZone != nil {
		zone := event.TimeZone
		if in.TimeZone != nil {
			zone = *in.TimeZone
		}
		loc, err := scheduling.LoadZone(zone)
		if err != nil {
			return nil, err
		}
		start, end := event.StartTime, event.EndTime
		if in.StartTime != nil {
			if start, err = scheduling.ParseUTC(*in.StartTime); err != nil {
				return nil, err
			}
		}
		if in.EndTime != nil {
			if end, err = scheduling.ParseUTC(*in.EndTime); err != nil {
				return nil, err
			}
		}
		if err := scheduling.ValidateOrder(start, end); err != nil {
			return nil, err
		}
		event.StartTime = start
		event.EndTime = end
		event.TimeZone = zone
		event.StartTimeLocal = scheduling.FormatLocal(start, loc)
		event.EndTimeLocal = scheduling.FormatLocal(end, loc)
	}

	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Location != nil {
		event.Location = *in.Location
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if len(in.ParticipantsToAdd) > 0 {
		existing, err := s.store.FindParticipants(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find participants: %w", err)
		}
		onEvent := make(map[string]bool, len(existing))
		for _, p := range existing {
			onEvent[p.Email] = true
		}
		var dups []string
		for _, p := range in.ParticipantsToAdd {
			if onEvent[p.Email] {
				dups = append(dups, p.Email)
			}
		}
		if len(dups) > 0 {
			return nil, &DuplicateParticipantError{Emails: dups}
		}
		if _, err := s.store.CreateParticipants(ctx, id, in.ParticipantsToAdd); err != nil {
			return nil, fmt.Errorf("create participants: %w", err)
		}
	}
	if len(in.ParticipantsToRemove) > 0 {
		if err := s.store.DeleteParticipants(ctx, id, in.ParticipantsToRemove); err != nil {
			return nil, fmt.Errorf("delete participants: %w", err)
		}
	}

	if err := s.attachParticipants(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent soft-deletes an event on behalf of its creator. The row and
// its participants are retained.
func (s *Service) DeleteEvent(ctx context.Context, id, creatorEmail string) (*model.Event, error) {
	event, err := s.store.FindActiveEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.CreatorEmail != creatorEmail {
		return nil, ErrUnauthorized
	}
	event.IsDeleted = true
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// RSVP overwrites the status of the invited participant identified by email
// on an active event.
func (s *Service) RSVP(ctx context.Context, eventID, email, status string) (*model.Event, *model.Participant, error) {
	switch status {
	case model.RSVPAccepted, model.RSVPDeclined, model.RSVPPending:
	default:
		return nil, nil, &InvalidRSVPStatusError{Status: status}
	}

	event, err := s.store.FindActiveEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, nil, ErrNotFound
	}
	participant, err := s.store.FindParticipantByEmail(ctx, eventID, email)
	if err != nil {
		return nil, nil, fmt.Errorf("find participant: %w", err)
	}
	if participant == nil {
		return nil, nil, fmt.Errorf("no participant with email %s for event %s: %w", email, eventID, ErrNotFound)
	}
	participant.RSVPStatus = status
	if err := s.store.UpdateParticipant(ctx, participant); err != nil {
		return nil, nil, fmt.Errorf("update participant: %w", err)
	}
	return event, participant, nil
}

func (s *Service) attachParticipants(ctx context.Context, event *model.Event) error {
	participants, err := s.store.FindParticipants(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("find participants: %w", err)
	}
	event.Participants = participants
	return nil
}
