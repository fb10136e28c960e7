package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/house7784/golf-trip-app/models"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNameConflict = errors.New("event name already exists")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id int) (*models.Event, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Event, error)
	ListStartingWithin(ctx context.Context, days int) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	SetLeaderboardActive(ctx context.Context, id int, active bool) error
	UpdateHandicapSettings(ctx context.Context, id int, cap *float64, policy models.HandicapPolicy) error
	Delete(ctx context.Context, id int) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id, name, location, start_date, end_date, organizer_id,
	handicap_cap, handicap_policy, leaderboard_active, logo_key, created_at`

func (r *postgresEventRepository) scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Location, &e.StartDate, &e.EndDate, &e.OrganizerID,
		&e.HandicapCap, &e.HandicapPolicy, &e.LeaderboardActive, &e.LogoKey, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, location, start_date, end_date, organizer_id, handicap_cap, handicap_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, leaderboard_active, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Name, event.Location, event.StartDate, event.EndDate,
		event.OrganizerID, event.HandicapCap, event.HandicapPolicy,
	).Scan(&event.ID, &event.LeaderboardActive, &event.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEventNameConflict
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) FindByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresEventRepository) ListByUser(ctx context.Context, userID int) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + ` FROM events e
		WHERE e.organizer_id = $1
		   OR EXISTS (SELECT 1 FROM event_participants p WHERE p.event_id = e.id AND p.user_id = $1)
		ORDER BY e.start_date`
	return r.queryEvents(ctx, query, userID)
}

// ListStartingWithin returns events whose start date falls inside the next
// `days` days (or has already passed but the event has not ended). Used by
// the handicap-lock sweep.
func (r *postgresEventRepository) ListStartingWithin(ctx context.Context, days int) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + ` FROM events
		WHERE start_date <= NOW() + ($1 || ' days')::interval AND end_date >= NOW() - interval '1 day'
		ORDER BY start_date`
	return r.queryEvents(ctx, query, days)
}

func (r *postgresEventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET name = $1, location = $2, start_date = $3, end_date = $4, logo_key = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		event.Name, event.Location, event.StartDate, event.EndDate, event.LogoKey, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) SetLeaderboardActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE events SET leaderboard_active = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to toggle leaderboard visibility: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateHandicapSettings(ctx context.Context, id int, cap *float64, policy models.HandicapPolicy) error {
	query := `UPDATE events SET handicap_cap = $1, handicap_policy = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, cap, policy, id)
	if err != nil {
		return fmt.Errorf("failed to update handicap settings: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
