package model

import "time"

// Recurrence kinds accepted for recurring events.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// RSVP statuses a participant can hold.
const (
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
	RSVPPending  = "pending"
)

type Event struct {
	ID                string
	CreatorEmail      string
	Country           string
	Title             string
	Description       string
	StartTime         time.Time // UTC
	EndTime           time.Time // UTC
	StartTimeLocal    string    // civil rendering of StartTime in TimeZone
	EndTimeLocal      string
	TimeZone          string
	Location          string
	RecurrenceType    string     // empty when not recurring
	RecurrenceEndDate *time.Time // exclusive series boundary, UTC
	IsDeleted         bool
	Participants      []Participant
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Participant struct {
	ID         string
	EventID    string
	Name       string
	Email      string
	RSVPStatus string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Occurrence is one concrete interval of an event, produced by recurrence
// expansion and consumed by the creation pipeline. The local strings render
// the same instants as StartUTC/EndUTC in TimeZone.
type Occurrence struct {
	StartUTC   time.Time
	EndUTC     time.Time
	StartLocal string
	EndLocal   string
	TimeZone   string
}

// ParticipantInput is a participant as supplied by the caller at creation or
// edit time.
type ParticipantInput struct {
	Name  string
	Email string
}

// CreateEventInput is the full creation request handed to the pipeline.
// StartTime/EndTime/RecurrenceEndDate are strict-UTC instant strings.
type CreateEventInput struct {
	CreatorEmail      string
	Country           string
	Title             string
	Description       string
	StartTime         string
	EndTime           string
	TimeZone          string
	Location          string
	RecurrenceType    string
	RecurrenceEndDate string
	Participants      []ParticipantInput
}

// EditEventInput carries the fields an edit may overwrite. Nil pointers leave
// the stored value untouched.
type EditEventInput struct {
	CreatorEmail         string
	Country              string
	Title                *string
	Description          *string
	StartTime            *string
	EndTime              *string
	TimeZone             *string
	Location             *string
	ParticipantsToAdd    []ParticipantInput
	ParticipantsToRemove []string
}

// Outcome is the result of processing one occurrence in a creation batch.
// Err is nil exactly when the occurrence was persisted.
type Outcome struct {
	Occurrence   Occurrence
	Event        *Event
	Participants []Participant
	Err          error
}

func (o Outcome) Created() bool { return o.Err == nil }
