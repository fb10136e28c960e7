package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/house7784/golf-trip-app/models"
)

var ErrRoundNotFound = errors.New("round not found")

type RoundRepository interface {
	// UpsertByDate creates or updates the round keyed by (event_id, date),
	// matching how the mobile client schedules competition days.
	UpsertByDate(ctx context.Context, round *models.Round) error
	FindByID(ctx context.Context, id int) (*models.Round, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Round, error)
	SetCourse(ctx context.Context, id int, courseName string, courseJSON string) error
	SetScoringLocked(ctx context.Context, id int, locked bool) error
	Delete(ctx context.Context, id int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

const roundColumns = `id, event_id, date, mode_key, course_name, course_data, scoring_locked, created_at`

func (r *postgresRoundRepository) scanRound(row rowScanner) (*models.Round, error) {
	var round models.Round
	err := row.Scan(
		&round.ID, &round.EventID, &round.Date, &round.ModeKey,
		&round.CourseName, &round.CourseJSON, &round.ScoringLocked, &round.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

func (r *postgresRoundRepository) UpsertByDate(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (event_id, date, mode_key)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, date) DO UPDATE SET mode_key = EXCLUDED.mode_key
		RETURNING id, scoring_locked, created_at`

	err := r.db.QueryRowContext(ctx, query, round.EventID, round.Date, round.ModeKey).
		Scan(&round.ID, &round.ScoringLocked, &round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert round: %w", err)
	}
	return nil
}

func (r *postgresRoundRepository) FindByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE id = $1`
	return r.scanRound(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRoundRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE event_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]*models.Round, 0)
	for rows.Next() {
		round, err := r.scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

func (r *postgresRoundRepository) SetCourse(ctx context.Context, id int, courseName string, courseJSON string) error {
	query := `UPDATE rounds SET course_name = $1, course_data = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, courseName, courseJSON, id)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) SetScoringLocked(ctx context.Context, id int, locked bool) error {
	query := `UPDATE rounds SET scoring_locked = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, locked, id)
	if err != nil {
		return fmt.Errorf("failed to toggle scoring lock: %w", err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
