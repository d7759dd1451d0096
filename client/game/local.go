package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/simon/client/network"
	"github.com/cbodonnell/simon/client/scenes"
	"github.com/cbodonnell/simon/pkg/game"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/timer"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResultPoster uploads finished games.
type ResultPoster interface {
	PostResult(ctx context.Context, result *types.Result) (string, error)
}

// LocalDriver runs the game in process. Its scheduler is advanced by one
// tick of game time on every Update.
type LocalDriver struct {
	board      *scenes.BoardScene
	controller *game.Controller
	scheduler  *timer.TickScheduler
	pads       []types.Pad
	player     string
	poster     ResultPoster
	rand       *rand.Rand
	tickLength func() time.Duration
}

type NewLocalDriverOptions struct {
	Player string
	// Poster uploads results when set.
	Poster ResultPoster
	// Rand defaults to a source seeded with the current time.
	Rand *rand.Rand
	// TickLength defaults to one ebiten tick.
	TickLength func() time.Duration
}

var _ Driver = &LocalDriver{}

func NewLocalDriver(opts NewLocalDriverOptions) *LocalDriver {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tickLength := opts.TickLength
	if tickLength == nil {
		tickLength = func() time.Duration {
			return time.Second / time.Duration(ebiten.TPS())
		}
	}
	return &LocalDriver{
		scheduler:  timer.NewTickScheduler(),
		pads:       types.DefaultPads(),
		player:     opts.Player,
		poster:     opts.Poster,
		rand:       r,
		tickLength: tickLength,
	}
}

func (d *LocalDriver) Pads() []types.Pad {
	return d.pads
}

func (d *LocalDriver) Attach(board *scenes.BoardScene) error {
	controller, err := game.NewController(game.NewControllerOptions{
		Presenter:  board,
		Scheduler:  d.scheduler,
		Pads:       d.pads,
		Rand:       d.rand,
		OnGameOver: d.handleGameOver,
		SessionID:  uuid.New().String(),
		Player:     d.player,
	})
	if err != nil {
		return fmt.Errorf("failed to create controller: %v", err)
	}
	d.board = board
	d.controller = controller
	return nil
}

func (d *LocalDriver) Start() {
	d.controller.HandleStart()
}

func (d *LocalDriver) PressPad(color types.Color) {
	if err := d.controller.HandlePadClick(color.String()); err != nil {
		log.Debug("Press rejected: %v", err)
	}
}

func (d *LocalDriver) SetSkillLevel(value string) {
	rounds, err := d.controller.HandleSkillLevel(value)
	d.board.ShowSkillLevel(rounds, err)
}

func (d *LocalDriver) Update() error {
	d.scheduler.Advance(d.tickLength())
	return nil
}

func (d *LocalDriver) Status() string {
	state := d.controller.State()
	return fmt.Sprintf("Local: %s, round %d", d.controller.Phase(), state.RoundCount)
}

func (d *LocalDriver) Close() {}

func (d *LocalDriver) handleGameOver(result *types.Result) {
	d.board.SetLastResult(result)
	if d.poster == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), network.PostResultTimeout)
		defer cancel()
		id, err := d.poster.PostResult(ctx, result)
		if err != nil {
			log.Warn("Failed to upload result: %v", err)
			return
		}
		log.Debug("Uploaded result %s", id)
	}()
}
