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
	ErrScoreCardNotFound = errors.New("scorecard not found")
	ErrScoreCardInvalid  = errors.New("scorecard round or user invalid")
)

type ScoreRepository interface {
	// Upsert writes the one scorecard per (round, user), replacing the
	// whole sparse hole map on every save.
	Upsert(ctx context.Context, card *models.ScoreCard) error
	FindByRoundAndUser(ctx context.Context, roundID, userID int) (*models.ScoreCard, error)
	ListByRound(ctx context.Context, roundID int) ([]*models.ScoreCard, error)
	ListByRounds(ctx context.Context, roundIDs []int) ([]*models.ScoreCard, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) scanCard(row rowScanner) (*models.ScoreCard, error) {
	var card models.ScoreCard
	var payload string
	err := row.Scan(&card.ID, &card.RoundID, &card.UserID, &payload, &card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreCardNotFound
		}
		return nil, err
	}
	if err := card.UnmarshalHoleScores(payload); err != nil {
		return nil, fmt.Errorf("failed to decode hole scores for scorecard %d: %w", card.ID, err)
	}
	return &card, nil
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, card *models.ScoreCard) error {
	payload, err := card.MarshalHoleScores()
	if err != nil {
		return fmt.Errorf("failed to encode hole scores: %w", err)
	}

	query := `
		INSERT INTO scores (round_id, user_id, hole_scores, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (round_id, user_id)
		DO UPDATE SET hole_scores = EXCLUDED.hole_scores, updated_at = NOW()
		RETURNING id, updated_at`

	err = r.db.QueryRowContext(ctx, query, card.RoundID, card.UserID, payload).
		Scan(&card.ID, &card.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrScoreCardInvalid
		}
		return fmt.Errorf("failed to upsert scorecard: %w", err)
	}
	return nil
}

func (r *postgresScoreRepository) FindByRoundAndUser(ctx context.Context, roundID, userID int) (*models.ScoreCard, error) {
	query := `
		SELECT id, round_id, user_id, hole_scores, updated_at
		FROM scores WHERE round_id = $1 AND user_id = $2`
	return r.scanCard(r.db.QueryRowContext(ctx, query, roundID, userID))
}

func (r *postgresScoreRepository) ListByRound(ctx context.Context, roundID int) ([]*models.ScoreCard, error) {
	return r.ListByRounds(ctx, []int{roundID})
}

func (r *postgresScoreRepository) ListByRounds(ctx context.Context, roundIDs []int) ([]*models.ScoreCard, error) {
	if len(roundIDs) == 0 {
		return []*models.ScoreCard{}, nil
	}
	query := `
		SELECT id, round_id, user_id, hole_scores, updated_at
		FROM scores WHERE round_id = ANY($1) ORDER BY round_id, user_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(roundIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}
	defer rows.Close()

	cards := make([]*models.ScoreCard, 0)
	for rows.Next() {
		card, err := r.scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
