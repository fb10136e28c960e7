package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// ScoreCard holds one player's gross strokes for a round. HoleScores is
// sparse: only holes actually played have an entry, so in-progress rounds
// score correctly. One row per (round_id, user_id), written via upsert.
type ScoreCard struct {
	ID         int         `json:"id" db:"id"`
	RoundID    int         `json:"round_id" db:"round_id"`
	UserID     int         `json:"user_id" db:"user_id"`
	HoleScores map[int]int `json:"hole_scores" db:"-"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// MarshalHoleScores encodes the sparse score map for the JSONB column.
// Keys are stringified hole numbers, matching what the mobile client sends.
func (c *ScoreCard) MarshalHoleScores() (string, error) {
	raw := make(map[string]int, len(c.HoleScores))
	for hole, gross := range c.HoleScores {
		raw[strconv.Itoa(hole)] = gross
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalHoleScores decodes a JSONB payload into the sparse score map.
// Non-numeric keys are skipped rather than failing the whole scorecard.
func (c *ScoreCard) UnmarshalHoleScores(payload string) error {
	if payload == "" {
		c.HoleScores = map[int]int{}
		return nil
	}
	raw := make(map[string]int)
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return err
	}
	scores := make(map[int]int, len(raw))
	for key, gross := range raw {
		hole, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		scores[hole] = gross
	}
	c.HoleScores = scores
	return nil
}
