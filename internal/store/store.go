// Package store implements the service's Store interface on PostgreSQL
// using pgx. All queries exclude soft-deleted rows except the event update
// itself.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const eventColumns = `id, creator_email, country, title, description,
	start_time, end_time, start_time_local, end_time_local, time_zone,
	location, recurrence_type, recurrence_end_date, is_deleted,
	created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	e := &model.Event{}
	err := row.Scan(
		&e.ID, &e.CreatorEmail, &e.Country, &e.Title, &e.Description,
		&e.StartTime, &e.EndTime, &e.StartTimeLocal, &e.EndTimeLocal, &e.TimeZone,
		&e.Location, &e.RecurrenceType, &e.RecurrenceEndDate, &e.IsDeleted,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) FindOverlapping(ctx context.Context, creatorEmail string, start, end time.Time) (*model.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 WHERE creator_email = $1
		   AND is_deleted = false
		   AND start_time < $3
		   AND end_time > $2
		 ORDER BY start_time
		 LIMIT 1`, creatorEmail, start, end,
	)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) CountEventsSince(ctx context.Context, creatorEmail string, since time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events
		 WHERE creator_email = $1 AND is_deleted = false AND start_time >= $2`,
		creatorEmail, since,
	).Scan(&n)
	return n, err
}

func (s *Store) FindActiveEventByID(ctx context.Context, id string) (*model.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND is_deleted = false`, id,
	)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent inserts the event row and its participant rows in one
// transaction, so a failed participant insert never leaves an orphaned
// event behind.
func (s *Store) CreateEvent(ctx context.Context, e *model.Event, in []model.ParticipantInput) ([]model.Participant, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO events (id, creator_email, country, title, description,
			start_time, end_time, start_time_local, end_time_local, time_zone,
			location, recurrence_type, recurrence_end_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING created_at, updated_at`,
		e.ID, e.CreatorEmail, e.Country, e.Title, e.Description,
		e.StartTime, e.EndTime, e.StartTimeLocal, e.EndTimeLocal, e.TimeZone,
		e.Location, e.RecurrenceType, e.RecurrenceEndDate,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	created := make([]model.Participant, 0, len(in))
	for _, pi := range in {
		p := model.Participant{
			ID:      uuid.New().String(),
			EventID: e.ID,
			Name:    pi.Name,
			Email:   pi.Email,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO participants (id, event_id, name, email)
			 VALUES ($1,$2,$3,$4)
			 RETURNING rsvp_status, created_at, updated_at`,
			p.ID, p.EventID, p.Name, p.Email,
		).Scan(&p.RSVPStatus, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		created = append(created, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	return s.pool.QueryRow(ctx,
		`UPDATE events
		 SET title=$2, description=$3, start_time=$4, end_time=$5,
		     start_time_local=$6, end_time_local=$7, time_zone=$8,
		     location=$9, is_deleted=$10, updated_at=NOW()
		 WHERE id=$1
		 RETURNING updated_at`,
		e.ID, e.Title, e.Description, e.StartTime, e.EndTime,
		e.StartTimeLocal, e.EndTimeLocal, e.TimeZone,
		e.Location, e.IsDeleted,
	).Scan(&e.UpdatedAt)
}

func (s *Store) ListActiveEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events WHERE is_deleted = false ORDER BY start_time`,
	)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (s *Store) ListEventsForUser(ctx context.Context, email string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT e.id, e.creator_email, e.country, e.title, e.description,
			e.start_time, e.end_time, e.start_time_local, e.end_time_local, e.time_zone,
			e.location, e.recurrence_type, e.recurrence_end_date, e.is_deleted,
			e.created_at, e.updated_at
		 FROM events e
		 LEFT JOIN participants p ON p.event_id = e.id
		 WHERE e.is_deleted = false
		   AND (e.creator_email = $1 OR p.email = $1)
		 ORDER BY e.start_time`, email,
	)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) CreateParticipants(ctx context.Context, eventID string, in []model.ParticipantInput) ([]model.Participant, error) {
	if len(in) == 0 {
		return nil, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := make([]model.Participant, 0, len(in))
	for _, pi := range in {
		p := model.Participant{
			ID:         uuid.New().String(),
			EventID:    eventID,
			Name:       pi.Name,
			Email:      pi.Email,
			RSVPStatus: model.RSVPPending,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO participants (id, event_id, name, email)
			 VALUES ($1,$2,$3,$4)
			 RETURNING rsvp_status, created_at, updated_at`,
			p.ID, p.EventID, p.Name, p.Email,
		).Scan(&p.RSVPStatus, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		created = append(created, p)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) FindParticipants(ctx context.Context, eventID string) ([]model.Participant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, event_id, name, email, rsvp_status, created_at, updated_at
		 FROM participants WHERE event_id = $1 ORDER BY created_at`, eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.RSVPStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) FindParticipantByEmail(ctx context.Context, eventID, email string) (*model.Participant, error) {
	p := &model.Participant{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, event_id, name, email, rsvp_status, created_at, updated_at
		 FROM participants WHERE event_id = $1 AND email = $2`, eventID, email,
	).Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.RSVPStatus, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) UpdateParticipant(ctx context.Context, p *model.Participant) error {
	return s.pool.QueryRow(ctx,
		`UPDATE participants SET rsvp_status=$2, updated_at=NOW()
		 WHERE id=$1 RETURNING updated_at`,
		p.ID, p.RSVPStatus,
	).Scan(&p.UpdatedAt)
}

func (s *Store) DeleteParticipants(ctx context.Context, eventID string, ids []string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM participants WHERE event_id = $1 AND id = ANY($2)`,
		eventID, ids,
	)
	return err
}
