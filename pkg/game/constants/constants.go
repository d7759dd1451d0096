package constants

import "time"

const (
	// MaxRoundCount is the number of rounds a player must complete to win
	MaxRoundCount int = 8

	// MinSkillLevel is the lowest accepted skill level
	MinSkillLevel int = 1
	// MaxSkillLevel is the highest accepted skill level
	MaxSkillLevel int = 4

	// ActivationInterval is the stagger between pad activations during the computer's turn
	ActivationInterval time.Duration = 600 * time.Millisecond
	// PulseDuration is how long a pad stays lit and sounding
	PulseDuration time.Duration = 500 * time.Millisecond
	// TurnTailDelay is added after the last activation before the player's turn begins
	TurnTailDelay time.Duration = 1000 * time.Millisecond
	// NextRoundDelay is the pause between a completed round and the next computer turn
	NextRoundDelay time.Duration = 1000 * time.Millisecond

	// ScreenWidth and ScreenHeight are the logical dimensions of the board
	ScreenWidth  int = 640
	ScreenHeight int = 480
)

// Text shown by the game.
const (
	TitleText          = "Simon Says"
	ComputerTurnText   = "The computer's turn..."
	KeepGoingText      = "Nice! Keep going!"
	MismatchMessage    = "Oops! Wrong sequence. Try again."
	VictoryMessage     = "Congratulations! You have completed all the rounds!"
	SkillLevelErrorMsg = "Please enter level 1, 2, 3, or 4"
)

// ComputerTurnDuration returns how long the computer's turn lasts for a
// sequence of the given length.
func ComputerTurnDuration(sequenceLength int) time.Duration {
	return ActivationInterval*time.Duration(sequenceLength) + TurnTailDelay
}
