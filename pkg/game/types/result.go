package types

import (
	"fmt"
	"time"
)

// Outcome describes how a game ended.
type Outcome string

const (
	OutcomeVictory  Outcome = "victory"
	OutcomeMismatch Outcome = "mismatch"
)

func (o Outcome) Valid() bool {
	return o == OutcomeVictory || o == OutcomeMismatch
}

// Result summarizes a finished game.
type Result struct {
	SessionID string  `json:"sessionID"`
	Player    string  `json:"player,omitempty"`
	Outcome   Outcome `json:"outcome"`
	// Round is the round being played when the game ended
	Round int `json:"round"`
	// RoundsCompleted is the number of rounds reproduced correctly
	RoundsCompleted int       `json:"roundsCompleted"`
	SequenceLength  int       `json:"sequenceLength"`
	SkillLevel      int       `json:"skillLevel"`
	FinishedAt      time.Time `json:"finishedAt"`
}

// Summary is a one line description of the result for sharing.
func (r *Result) Summary() string {
	if r == nil {
		return ""
	}
	switch r.Outcome {
	case OutcomeVictory:
		return fmt.Sprintf("Simon Says: won all %d rounds (sequence of %d)", r.RoundsCompleted, r.SequenceLength)
	case OutcomeMismatch:
		return fmt.Sprintf("Simon Says: %d rounds completed, missed in round %d", r.RoundsCompleted, r.Round)
	}
	return fmt.Sprintf("Simon Says: %d rounds completed", r.RoundsCompleted)
}
