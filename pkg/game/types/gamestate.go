package types

type GameState struct {
	// ComputerSequence is the sequence the player must reproduce; it grows by one color per round
	ComputerSequence []Color `json:"computerSequence"`
	// PlayerSequence holds the presses made so far in the current round
	PlayerSequence []Color `json:"playerSequence"`
	// RoundCount is the current round, starting at 1; zero while idle
	RoundCount int `json:"roundCount"`
	// SkillLevel is the last valid skill level selected; zero if none was selected
	SkillLevel int `json:"skillLevel"`
}

func NewGameState() *GameState {
	return &GameState{
		ComputerSequence: make([]Color, 0),
		PlayerSequence:   make([]Color, 0),
	}
}

// Reset restores the sequences and round counter to their initial values.
// The selected skill level survives a reset.
func (g *GameState) Reset() {
	g.ComputerSequence = make([]Color, 0)
	g.PlayerSequence = make([]Color, 0)
	g.RoundCount = 0
}

func (g *GameState) Copy() *GameState {
	computer := make([]Color, len(g.ComputerSequence))
	copy(computer, g.ComputerSequence)
	player := make([]Color, len(g.PlayerSequence))
	copy(player, g.PlayerSequence)
	return &GameState{
		ComputerSequence: computer,
		PlayerSequence:   player,
		RoundCount:       g.RoundCount,
		SkillLevel:       g.SkillLevel,
	}
}

// PressesLeft returns how many presses remain in the current round.
func (g *GameState) PressesLeft() int {
	return len(g.ComputerSequence) - len(g.PlayerSequence)
}

// IsPrefix reports whether the player's presses match the start of the computer's sequence.
func (g *GameState) IsPrefix() bool {
	if len(g.PlayerSequence) > len(g.ComputerSequence) {
		return false
	}
	for i, c := range g.PlayerSequence {
		if g.ComputerSequence[i] != c {
			return false
		}
	}
	return true
}
