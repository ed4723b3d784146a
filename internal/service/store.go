package service

import (
	"context"
	"time"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

// Store is the persistence collaborator. Lookups that can miss return
// (nil, nil) so the service owns the not-found semantics; implementations
// only return errors for infrastructure failures.
//
// Soft-deleted events are invisible to every method except UpdateEvent.
type Store interface {
	// FindOverlapping returns the first active event of the creator whose
	// interval intersects [start, end). Touching endpoints do not intersect.
	FindOverlapping(ctx context.Context, creatorEmail string, start, end time.Time) (*model.Event, error)

	// CountEventsSince counts the creator's active events with
	// start_time >= since.
	CountEventsSince(ctx context.Context, creatorEmail string, since time.Time) (int, error)

	FindActiveEventByID(ctx context.Context, id string) (*model.Event, error)

	// CreateEvent persists the event and its participants atomically; on
	// error neither is visible.
	CreateEvent(ctx context.Context, event *model.Event, participants []model.ParticipantInput) ([]model.Participant, error)

	UpdateEvent(ctx context.Context, event *model.Event) error
	ListActiveEvents(ctx context.Context) ([]model.Event, error)

	// ListEventsForUser returns active events where the user is the creator
	// or a participant.
	ListEventsForUser(ctx context.Context, email string) ([]model.Event, error)

	// CreateParticipants adds participants to an existing event (edit path).
	CreateParticipants(ctx context.Context, eventID string, in []model.ParticipantInput) ([]model.Participant, error)
	FindParticipants(ctx context.Context, eventID string) ([]model.Participant, error)
	FindParticipantByEmail(ctx context.Context, eventID, email string) (*model.Participant, error)
	UpdateParticipant(ctx context.Context, p *model.Participant) error
	DeleteParticipants(ctx context.Context, eventID string, ids []string) error
}
