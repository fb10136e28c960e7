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
	ErrTeeTimeNotFound = errors.New("tee time not found")
	ErrTeeTimeInvalid  = errors.New("tee time round invalid")
	ErrPairingNotFound = errors.New("pairing slot not found")
	ErrPairingInvalid  = errors.New("pairing player or slot invalid")
)

type TeeTimeRepository interface {
	// Create inserts the tee time and its four empty slots in one
	// transaction.
	Create(ctx context.Context, teeTime *models.TeeTime) error
	FindByID(ctx context.Context, id int) (*models.TeeTime, error)
	// ListByRound returns tee times ordered by time with their pairings
	// attached, players preloaded.
	ListByRound(ctx context.Context, roundID int) ([]*models.TeeTime, error)
	Delete(ctx context.Context, id int) error

	SetPairingPlayer(ctx context.Context, teeTimeID, slotNumber int, playerID *int) error
	ListPairingsByRound(ctx context.Context, roundID int) ([]*models.Pairing, error)
}

type postgresTeeTimeRepository struct {
	db *sql.DB
}

func NewPostgresTeeTimeRepository(db *sql.DB) TeeTimeRepository {
	return &postgresTeeTimeRepository{db: db}
}

func (r *postgresTeeTimeRepository) Create(ctx context.Context, teeTime *models.TeeTime) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tee_times (round_id, time, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, teeTime.RoundID, teeTime.Time).
		Scan(&teeTime.ID, &teeTime.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeeTimeInvalid
		}
		return fmt.Errorf("failed to create tee time: %w", err)
	}

	teeTime.Pairings = make([]models.Pairing, 0, 4)
	for slot := 1; slot <= 4; slot++ {
		pairing := models.Pairing{TeeTimeID: teeTime.ID, SlotNumber: slot}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO pairings (tee_time_id, slot_number) VALUES ($1, $2) RETURNING id`,
			teeTime.ID, slot).Scan(&pairing.ID)
		if err != nil {
			return fmt.Errorf("failed to create pairing slot %d: %w", slot, err)
		}
		teeTime.Pairings = append(teeTime.Pairings, pairing)
	}

	return tx.Commit()
}

func (r *postgresTeeTimeRepository) FindByID(ctx context.Context, id int) (*models.TeeTime, error) {
	var teeTime models.TeeTime
	query := `SELECT id, round_id, time, created_at FROM tee_times WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&teeTime.ID, &teeTime.RoundID, &teeTime.Time, &teeTime.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeeTimeNotFound
		}
		return nil, err
	}

	pairings, err := r.listPairings(ctx, `p.tee_time_id = $1`, id)
	if err != nil {
		return nil, err
	}
	teeTime.Pairings = make([]models.Pairing, 0, len(pairings))
	for _, p := range pairings {
		teeTime.Pairings = append(teeTime.Pairings, *p)
	}
	return &teeTime, nil
}

func (r *postgresTeeTimeRepository) ListByRound(ctx context.Context, roundID int) ([]*models.TeeTime, error) {
	query := `
		SELECT id, round_id, time, created_at
		FROM tee_times WHERE round_id = $1 ORDER BY time, id`
	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tee times: %w", err)
	}
	defer rows.Close()

	teeTimes := make([]*models.TeeTime, 0)
	byID := make(map[int]*models.TeeTime)
	for rows.Next() {
		var tt models.TeeTime
		if err := rows.Scan(&tt.ID, &tt.RoundID, &tt.Time, &tt.CreatedAt); err != nil {
			return nil, err
		}
		tt.Pairings = make([]models.Pairing, 0, 4)
		teeTimes = append(teeTimes, &tt)
		byID[tt.ID] = &tt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pairings, err := r.ListPairingsByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	for _, p := range pairings {
		if tt, ok := byID[p.TeeTimeID]; ok {
			tt.Pairings = append(tt.Pairings, *p)
		}
	}
	return teeTimes, nil
}

func (r *postgresTeeTimeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tee_times WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tee time: %w", err)
	}
	return checkAffectedRows(result, ErrTeeTimeNotFound)
}

func (r *postgresTeeTimeRepository) SetPairingPlayer(ctx context.Context, teeTimeID, slotNumber int, playerID *int) error {
	query := `UPDATE pairings SET player_id = $1 WHERE tee_time_id = $2 AND slot_number = $3`
	result, err := r.db.ExecContext(ctx, query, playerID, teeTimeID, slotNumber)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPairingInvalid
		}
		return fmt.Errorf("failed to update pairing: %w", err)
	}
	return checkAffectedRows(result, ErrPairingNotFound)
}

func (r *postgresTeeTimeRepository) ListPairingsByRound(ctx context.Context, roundID int) ([]*models.Pairing, error) {
	return r.listPairings(ctx,
		`p.tee_time_id IN (SELECT id FROM tee_times WHERE round_id = $1)`, roundID)
}

func (r *postgresTeeTimeRepository) listPairings(ctx context.Context, where string, arg any) ([]*models.Pairing, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.tee_time_id, p.slot_number, p.player_id,
		       u.id, u.full_name, u.email, u.handicap_index
		FROM pairings p
		LEFT JOIN users u ON u.id = p.player_id
		WHERE %s
		ORDER BY p.tee_time_id, p.slot_number`, where)
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairings: %w", err)
	}
	defer rows.Close()

	pairings := make([]*models.Pairing, 0)
	for rows.Next() {
		var p models.Pairing
		var userID sql.NullInt64
		var fullName, email sql.NullString
		var handicap sql.NullFloat64
		err := rows.Scan(&p.ID, &p.TeeTimeID, &p.SlotNumber, &p.PlayerID,
			&userID, &fullName, &email, &handicap)
		if err != nil {
			return nil, err
		}
		if userID.Valid {
			p.Player = &models.User{
				ID:            int(userID.Int64),
				FullName:      fullName.String,
				Email:         email.String,
				HandicapIndex: handicap.Float64,
			}
		}
		pairings = append(pairings, &p)
	}
	return pairings, rows.Err()
}
