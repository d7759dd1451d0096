package game

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/simon/client/input"
	"github.com/cbodonnell/simon/client/scenes"
	"github.com/cbodonnell/simon/client/ui"
	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// driver runs the game behind the board.
	driver Driver
	// sound plays pad tones.
	sound scenes.TonePlayer
	// mode is the current game mode.
	mode GameMode
	// scene is the current scene.
	scene scenes.Scene
}

type GameMode int

const (
	GameModePlay GameMode = iota
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModePlay:
		return "Play"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Debug  bool
	Driver Driver
	// Sound is optional.
	Sound scenes.TonePlayer
}

func NewGame(opts NewGameOptions) (ebiten.Game, error) {
	if opts.Driver == nil {
		return nil, fmt.Errorf("driver is required")
	}
	g := &Game{
		debug:  opts.Debug,
		driver: opts.Driver,
		sound:  opts.Sound,
	}

	if err := g.loadBoard(); err != nil {
		return nil, fmt.Errorf("failed to load board scene: %v", err)
	}

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadBoard() error {
	board, err := scenes.NewBoardScene(scenes.NewBoardSceneOptions{
		Pads:         g.driver.Pads(),
		Sound:        g.sound,
		OnStart:      g.driver.Start,
		OnPadPress:   g.driver.PressPad,
		OnSkillLevel: g.driver.SetSkillLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to create board scene: %v", err)
	}
	if err := g.driver.Attach(board); err != nil {
		return fmt.Errorf("failed to attach driver: %v", err)
	}
	if err := g.SetScene(board); err != nil {
		return fmt.Errorf("failed to set board scene: %v", err)
	}
	g.mode = GameModePlay
	return nil
}

func (g *Game) loadError(msg string) error {
	g.driver.Close()
	errorScene, err := scenes.NewErrorScene(msg)
	if err != nil {
		return fmt.Errorf("failed to create error scene: %v", err)
	}
	if err := g.SetScene(errorScene); err != nil {
		return fmt.Errorf("failed to set error scene: %v", err)
	}
	g.mode = GameModeError
	return nil
}

func (g *Game) Update() error {
	if input.IsNegativeJustPressed() && !g.notifying() {
		if g.mode == GameModePlay {
			g.driver.Close()
		}
		return ebiten.Termination
	}

	if g.mode == GameModePlay {
		if err := g.driver.Update(); err != nil {
			var actionable *ui.ActionableError
			if !errors.As(err, &actionable) {
				return fmt.Errorf("failed to update driver: %v", err)
			}
			log.Error("Game stopped: %v", err)
			if err := g.loadError(actionable.Message); err != nil {
				return fmt.Errorf("failed to load error scene: %v", err)
			}
		}
	}

	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

// notifying reports whether a notification is open. Esc dismisses it
// instead of quitting.
func (g *Game) notifying() bool {
	board, ok := g.scene.(*scenes.BoardScene)
	if !ok || !board.IsNotifying() {
		return false
	}
	board.DismissNotification()
	return true
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Mode: %s", g.mode))
	if g.mode == GameModePlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   %s", g.driver.Status()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return constants.ScreenWidth, constants.ScreenHeight
}
