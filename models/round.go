package models

import (
	"encoding/json"
	"time"
)

// CourseHole mirrors scoring.Hole in its persisted JSONB form.
type CourseHole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"hcp"`
}

// CourseData is the JSONB payload stored on a round once the organizer has
// configured the course. A round without course data is still playable; net
// scoring falls back to gross totals until holes are entered.
type CourseData struct {
	Holes []CourseHole `json:"holes"`
}

// Round is one competition day of an event, keyed by (event_id, date).
type Round struct {
	ID            int       `json:"id" db:"id"`
	EventID       int       `json:"event_id" db:"event_id"`
	Date          time.Time `json:"date" db:"date"`
	ModeKey       string    `json:"mode_key" db:"mode_key"`
	CourseName    *string   `json:"course_name,omitempty" db:"course_name"`
	CourseJSON    *string   `json:"-" db:"course_data"`
	ScoringLocked bool      `json:"scoring_locked" db:"scoring_locked"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Parsed course data, populated from CourseJSON by the service layer.
	Course *CourseData `json:"course,omitempty" db:"-"`
}

// ParseCourse decodes the raw JSONB course column. A missing or empty
// payload yields nil without error.
func (r *Round) ParseCourse() (*CourseData, error) {
	if r.CourseJSON == nil || *r.CourseJSON == "" {
		return nil, nil
	}
	var data CourseData
	if err := json.Unmarshal([]byte(*r.CourseJSON), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
