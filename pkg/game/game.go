package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/timer"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseComputerTurn
	PhaseHumanTurn
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseComputerTurn:
		return "Computer Turn"
	case PhaseHumanTurn:
		return "Human Turn"
	}
	return "Unknown"
}

// Controller owns the state of one game and drives its turns.
// It is not safe for concurrent use: the owner must call every method, and
// advance the scheduler, from a single goroutine.
type Controller struct {
	presenter     Presenter
	timers        *timer.Group
	pads          []types.Pad
	rand          *rand.Rand
	maxRoundCount int
	state         *types.GameState
	phase         Phase
	onGameOver    func(result *types.Result)
	sessionID     string
	player        string
	now           func() time.Time
	logger        *log.Logger
}

// NewControllerOptions contains options for creating a new Controller.
type NewControllerOptions struct {
	// Presenter renders the game. Required.
	Presenter Presenter
	// Scheduler runs delayed callbacks. Required.
	Scheduler timer.Scheduler
	// Pads is the pad catalog. Defaults to types.DefaultPads().
	Pads []types.Pad
	// Rand is the source used to pick pads. Nil uses the unseeded global source.
	Rand *rand.Rand
	// MaxRoundCount is the number of rounds to win. Defaults to constants.MaxRoundCount.
	MaxRoundCount int
	// OnGameOver is called with the result of every game that ends in victory or mismatch.
	OnGameOver func(result *types.Result)
	// SessionID and Player are copied into results.
	SessionID string
	Player    string
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewController(opts NewControllerOptions) (*Controller, error) {
	if opts.Presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}

	pads := opts.Pads
	if pads == nil {
		pads = types.DefaultPads()
	}
	maxRoundCount := opts.MaxRoundCount
	if maxRoundCount <= 0 {
		maxRoundCount = constants.MaxRoundCount
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		presenter:     opts.Presenter,
		timers:        timer.NewGroup(opts.Scheduler),
		pads:          pads,
		rand:          opts.Rand,
		maxRoundCount: maxRoundCount,
		state:         types.NewGameState(),
		phase:         PhaseIdle,
		onGameOver:    opts.OnGameOver,
		sessionID:     opts.SessionID,
		player:        opts.Player,
		now:           now,
		logger:        log.WithComponent("game"),
	}, nil
}

// State returns a copy of the current game state.
func (c *Controller) State() *types.GameState {
	return c.state.Copy()
}

func (c *Controller) Phase() Phase {
	return c.phase
}

func (c *Controller) MaxRoundCount() int {
	return c.maxRoundCount
}

func (c *Controller) Pads() []types.Pad {
	pads := make([]types.Pad, len(c.pads))
	copy(pads, c.pads)
	return pads
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

// HandleStart is the entry point for start clicks.
func (c *Controller) HandleStart() {
	c.StartGame()
}

// HandlePadClick is the entry point for pad clicks carrying a raw color token.
// Unknown tokens are ignored.
func (c *Controller) HandlePadClick(token string) error {
	color, ok := types.ParseColor(token)
	if !ok {
		c.logger.Trace("Ignoring click with unknown pad token %q", token)
		return nil
	}
	c.presenter.PulsePad(color, constants.PulseDuration)
	return c.RegisterPress(color)
}

// HandleSkillLevel is the entry point for skill level selections.
func (c *Controller) HandleSkillLevel(value string) (int, error) {
	return c.SetSkillLevel(value)
}

// StartGame starts a new game from round one. Calling it during a game
// abandons that game.
func (c *Controller) StartGame() {
	if c.phase != PhaseIdle {
		c.logger.Debug("Restarting game in round %d", c.state.RoundCount)
	}
	c.timers.CancelAll()
	c.state.Reset()
	c.state.RoundCount = 1
	c.presenter.SetVisibility(types.TargetStart, false)
	c.presenter.SetVisibility(types.TargetStatus, true)
	c.PlayComputerTurn()
}

// PlayComputerTurn extends the sequence by one random pad and plays it back.
// The player's turn begins once the playback has finished.
func (c *Controller) PlayComputerTurn() {
	c.phase = PhaseComputerTurn
	c.presenter.SetInteractive(false)
	c.presenter.ShowText(types.TargetStatus, constants.ComputerTurnText)
	c.presenter.ShowText(types.TargetHeading, fmt.Sprintf("Round %d of %d", c.state.RoundCount, c.maxRoundCount))

	pad, ok := RandomItem(c.rand, c.pads)
	if !ok {
		c.logger.Error("Cannot play computer turn: pad catalog is empty")
		return
	}
	c.state.ComputerSequence = append(c.state.ComputerSequence, pad.Color)
	c.logger.Debug("Round %d: sequence length %d", c.state.RoundCount, len(c.state.ComputerSequence))

	c.activatePads(c.state.ComputerSequence)
	c.timers.After(constants.ComputerTurnDuration(len(c.state.ComputerSequence)), func() {
		c.presenter.SetInteractive(true)
		c.PlayHumanTurn()
	})
}

// activatePads schedules one pulse per color, staggered by the activation interval.
func (c *Controller) activatePads(sequence []types.Color) {
	for i, color := range sequence {
		color := color
		delay := constants.ActivationInterval * time.Duration(i+1)
		c.timers.After(delay, func() {
			c.presenter.PulsePad(color, constants.PulseDuration)
		})
	}
}

// PlayHumanTurn hands control to the player.
func (c *Controller) PlayHumanTurn() {
	c.phase = PhaseHumanTurn
	c.presenter.SetInteractive(true)
	c.presenter.ShowText(types.TargetStatus, pressesLeftText(c.state.PressesLeft()))
}

// RegisterPress validates a press against the computer's sequence.
// A wrong press resets the game and returns a *SequenceMismatchError.
func (c *Controller) RegisterPress(color types.Color) error {
	c.state.PlayerSequence = append(c.state.PlayerSequence, color)
	i := len(c.state.PlayerSequence) - 1

	var expected types.Color
	if i < len(c.state.ComputerSequence) {
		expected = c.state.ComputerSequence[i]
	}
	if expected != color {
		err := &SequenceMismatchError{Index: i, Expected: expected, Got: color}
		c.logger.Debug("Player failed in round %d: %v", c.state.RoundCount, err)
		c.resetGame(constants.MismatchMessage, types.OutcomeMismatch)
		return err
	}

	remaining := c.state.PressesLeft()
	if remaining == 0 {
		c.CheckRound()
		return nil
	}
	c.presenter.ShowText(types.TargetStatus, fmt.Sprintf("Presses remaining: %d", remaining))
	return nil
}

// CheckRound is called once the player has reproduced the whole sequence.
// It ends the game after the last round, otherwise it schedules the next one.
func (c *Controller) CheckRound() {
	if c.state.RoundCount >= c.maxRoundCount {
		c.logger.Debug("Player completed all %d rounds", c.maxRoundCount)
		c.resetGame(constants.VictoryMessage, types.OutcomeVictory)
		return
	}

	c.state.RoundCount++
	c.state.PlayerSequence = make([]types.Color, 0, len(c.state.ComputerSequence)+1)
	c.phase = PhaseComputerTurn
	c.presenter.ShowText(types.TargetStatus, constants.KeepGoingText)
	c.presenter.SetInteractive(false)
	c.timers.After(constants.NextRoundDelay, c.PlayComputerTurn)
}

// ResetGame shows message and returns the board to its idle state.
// No result is reported for a game reset this way.
func (c *Controller) ResetGame(message string) {
	c.resetGame(message, "")
}

func (c *Controller) resetGame(message string, outcome types.Outcome) {
	c.presenter.Notify(message)
	if outcome != "" && c.onGameOver != nil {
		c.onGameOver(c.result(outcome))
	}

	c.presenter.ShowText(types.TargetHeading, constants.TitleText)
	c.presenter.SetVisibility(types.TargetStart, true)
	c.presenter.SetVisibility(types.TargetStatus, false)
	c.presenter.SetInteractive(false)

	if n := c.timers.CancelAll(); n > 0 {
		c.logger.Trace("Cancelled %d pending callbacks on reset", n)
	}
	c.state.Reset()
	c.phase = PhaseIdle
}

func (c *Controller) result(outcome types.Outcome) *types.Result {
	completed := c.state.RoundCount - 1
	if outcome == types.OutcomeVictory {
		completed = c.state.RoundCount
	}
	if completed < 0 {
		completed = 0
	}
	return &types.Result{
		SessionID:       c.sessionID,
		Player:          c.player,
		Outcome:         outcome,
		Round:           c.state.RoundCount,
		RoundsCompleted: completed,
		SequenceLength:  len(c.state.ComputerSequence),
		SkillLevel:      c.state.SkillLevel,
		FinishedAt:      c.now().UTC(),
	}
}

// SetSkillLevel validates a skill level and returns the number of rounds it
// selects. The level is recorded for results; the round count of the game
// does not change. Invalid values leave the state untouched.
func (c *Controller) SetSkillLevel(value string) (int, error) {
	level, err := parseLeadingInt(value)
	if err != nil || level < constants.MinSkillLevel || level > constants.MaxSkillLevel {
		return 0, &InvalidSkillLevelError{Value: value}
	}
	c.state.SkillLevel = level
	return c.maxRoundCount, nil
}
