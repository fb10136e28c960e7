package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/house7784/golf-trip-app/models"
)

var (
	ErrParticipantNotFound = errors.New("event participant not found")
	ErrParticipantConflict = errors.New("user already joined this event")
	ErrParticipantInvalid  = errors.New("participant user or event invalid")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.EventParticipant) error
	FindByID(ctx context.Context, id int) (*models.EventParticipant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID int) (*models.EventParticipant, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.EventParticipant, error)
	SetTeam(ctx context.Context, id int, teamID *int) error
	SetEventHandicap(ctx context.Context, id int, handicap *float64, lockedAt *time.Time) error
	LockEventHandicap(ctx context.Context, id int, handicap float64, lockedAt time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `id, event_id, user_id, team_id, role, event_handicap, handicap_locked_at, created_at`

func (r *postgresParticipantRepository) scanParticipant(row rowScanner) (*models.EventParticipant, error) {
	var p models.EventParticipant
	err := row.Scan(
		&p.ID, &p.EventID, &p.UserID, &p.TeamID, &p.Role,
		&p.EventHandicap, &p.HandicapLockedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.EventParticipant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, team_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.EventID, p.UserID, p.TeamID, p.Role).
		Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrParticipantConflict
			case "23503": // foreign_key_violation
				return ErrParticipantInvalid
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) FindByID(ctx context.Context, id int) (*models.EventParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants WHERE id = $1`
	return r.scanParticipant(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresParticipantRepository) FindByEventAndUser(ctx context.Context, eventID, userID int) (*models.EventParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants WHERE event_id = $1 AND user_id = $2`
	return r.scanParticipant(r.db.QueryRowContext(ctx, query, eventID, userID))
}

// ListByEvent returns the roster with each participant's user preloaded.
func (r *postgresParticipantRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.EventParticipant, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.team_id, p.role,
		       p.event_handicap, p.handicap_locked_at, p.created_at,
		       u.full_name, u.email, u.handicap_index
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1 ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.EventParticipant, 0)
	for rows.Next() {
		var p models.EventParticipant
		var u models.User
		err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.TeamID, &p.Role,
			&p.EventHandicap, &p.HandicapLockedAt, &p.CreatedAt,
			&u.FullName, &u.Email, &u.HandicapIndex,
		)
		if err != nil {
			return nil, err
		}
		u.ID = p.UserID
		p.User = &u
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

func (r *postgresParticipantRepository) SetTeam(ctx context.Context, id int, teamID *int) error {
	query := `UPDATE event_participants SET team_id = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, teamID, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrParticipantInvalid
		}
		return fmt.Errorf("failed to set participant team: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) SetEventHandicap(ctx context.Context, id int, handicap *float64, lockedAt *time.Time) error {
	query := `UPDATE event_participants SET event_handicap = $1, handicap_locked_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, handicap, lockedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set event handicap: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

// LockEventHandicap writes the locked handicap only if none is set yet,
// which makes the automatic sweep write-once even under concurrent runs.
func (r *postgresParticipantRepository) LockEventHandicap(ctx context.Context, id int, handicap float64, lockedAt time.Time) error {
	query := `
		UPDATE event_participants SET event_handicap = $1, handicap_locked_at = $2
		WHERE id = $3 AND event_handicap IS NULL`
	result, err := r.db.ExecContext(ctx, query, handicap, lockedAt, id)
	if err != nil {
		return fmt.Errorf("failed to lock event handicap: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM event_participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
