package models

import "time"

// Result is a stored game result.
type Result struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Player          string    `json:"player,omitempty"`
	Outcome         string    `json:"outcome"`
	Round           int       `json:"round"`
	RoundsCompleted int       `json:"rounds_completed"`
	SequenceLength  int       `json:"sequence_length"`
	SkillLevel      int       `json:"skill_level"`
	FinishedAt      time.Time `json:"finished_at"`
}

// Stats aggregates all stored results.
type Stats struct {
	Games                  int     `json:"games"`
	Victories              int     `json:"victories"`
	Mismatches             int     `json:"mismatches"`
	BestRoundsCompleted    int     `json:"best_rounds_completed"`
	AverageRoundsCompleted float64 `json:"average_rounds_completed"`
}
