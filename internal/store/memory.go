package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

// Memory is an in-memory implementation of the service's store interface.
// It mirrors the SQL implementation's visibility rules and exists so the
// service and transport can run without Postgres in tests and local tooling.
type Memory struct {
	mu           sync.Mutex
	events       map[string]*model.Event
	participants map[string][]model.Participant
	order        []string
}

func NewMemory() *Memory {
	return &Memory{
		events:       make(map[string]*model.Event),
		participants: make(map[string][]model.Participant),
	}
}

func (m *Memory) FindOverlapping(_ context.Context, creatorEmail string, start, end time.Time) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *model.Event
	for _, id := range m.order {
		e := m.events[id]
		if e.IsDeleted || e.CreatorEmail != creatorEmail {
			continue
		}
		if e.StartTime.Before(end) && e.EndTime.After(start) {
			if found == nil || e.StartTime.Before(found.StartTime) {
				found = e
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func (m *Memory) CountEventsSince(_ context.Context, creatorEmail string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if !e.IsDeleted && e.CreatorEmail == creatorEmail && !e.StartTime.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) FindActiveEventByID(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok || e.IsDeleted {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

// CreateEvent stores the event and its participants under one lock hold,
// mirroring the SQL store's single transaction.
func (m *Memory) CreateEvent(_ context.Context, event *model.Event, in []model.ParticipantInput) ([]model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	cp := *event
	m.events[event.ID] = &cp
	m.order = append(m.order, event.ID)

	created := make([]model.Participant, 0, len(in))
	for _, pi := range in {
		p := model.Participant{
			ID:         uuid.New().String(),
			EventID:    event.ID,
			Name:       pi.Name,
			Email:      pi.Email,
			RSVPStatus: model.RSVPPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		m.participants[event.ID] = append(m.participants[event.ID], p)
		created = append(created, p)
	}
	return created, nil
}

func (m *Memory) UpdateEvent(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.UpdatedAt = time.Now()
	cp := *event
	m.events[event.ID] = &cp
	return nil
}

func (m *Memory) ListActiveEvents(_ context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Event
	for _, id := range m.order {
		if e := m.events[id]; !e.IsDeleted {
			out = append(out, *e)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) ListEventsForUser(_ context.Context, email string) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Event
	for _, id := range m.order {
		e := m.events[id]
		if e.IsDeleted {
			continue
		}
		if e.CreatorEmail == email {
			out = append(out, *e)
			continue
		}
		for _, p := range m.participants[id] {
			if p.Email == email {
				out = append(out, *e)
				break
			}
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}

func (m *Memory) CreateParticipants(_ context.Context, eventID string, in []model.ParticipantInput) ([]model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	created := make([]model.Participant, 0, len(in))
	for _, pi := range in {
		p := model.Participant{
			ID:         uuid.New().String(),
			EventID:    eventID,
			Name:       pi.Name,
			Email:      pi.Email,
			RSVPStatus: model.RSVPPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		m.participants[eventID] = append(m.participants[eventID], p)
		created = append(created, p)
	}
	return created, nil
}

func (m *Memory) FindParticipants(_ context.Context, eventID string) ([]model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Participant(nil), m.participants[eventID]...), nil
}

func (m *Memory) FindParticipantByEmail(_ context.Context, eventID, email string) (*model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants[eventID] {
		if p.Email == email {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) UpdateParticipant(_ context.Context, p *model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.participants[p.EventID]
	for i := range list {
		if list[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			list[i] = *p
			return nil
		}
	}
	return nil
}

func (m *Memory) DeleteParticipants(_ context.Context, eventID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []model.Participant
	for _, p := range m.participants[eventID] {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	m.participants[eventID] = kept
	return nil
}
