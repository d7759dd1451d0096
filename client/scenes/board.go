package scenes

import (
	"fmt"
	goimage "image"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/cbodonnell/simon/client/fonts"
	"github.com/cbodonnell/simon/client/input"
	"github.com/cbodonnell/simon/client/layout"
	"github.com/cbodonnell/simon/client/objects"
	"github.com/cbodonnell/simon/pkg/game"
	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	toastTTL = 1500
	toastY   = 60
)

// TonePlayer plays the tone of a pad.
type TonePlayer interface {
	PlayTone(freq float64, d time.Duration)
}

// BoardScene is the game board. It implements game.Presenter and reports
// player input through its callbacks.
type BoardScene struct {
	*BaseScene

	root       *objects.SortedZIndexObject
	pads       []types.Pad
	padObjects map[types.Color]*objects.PadObject
	hitTester  *layout.HitTester
	sound      TonePlayer

	onStart      func()
	onPadPress   func(color types.Color)
	onSkillLevel func(value string)

	ui         *ebitenui.UI
	skillInput *widget.TextInput
	dirty      bool

	heading       string
	status        string
	startLabel    string
	startVisible  bool
	statusVisible bool
	interactive   bool
	notification  string
	skillValue    string
	skillMessage  string
	skillErr      bool
	lastSummary   string
	toastSeq      int
}

type NewBoardSceneOptions struct {
	Pads []types.Pad
	// Sound plays pad tones. Optional.
	Sound TonePlayer
	// OnStart is called when the start button or Enter is pressed.
	OnStart func()
	// OnPadPress is called for clicks and key presses on pads while input is enabled.
	OnPadPress func(color types.Color)
	// OnSkillLevel is called when a skill level is submitted.
	OnSkillLevel func(value string)
}

var _ Scene = &BoardScene{}
var _ game.Presenter = &BoardScene{}

func NewBoardScene(opts NewBoardSceneOptions) (*BoardScene, error) {
	if len(opts.Pads) == 0 {
		return nil, fmt.Errorf("board needs at least one pad")
	}
	root := objects.NewSortedZIndexObject("board-root")
	return &BoardScene{
		BaseScene:     NewBaseScene(root),
		root:          root,
		pads:          opts.Pads,
		padObjects:    make(map[types.Color]*objects.PadObject),
		hitTester:     layout.NewHitTester(constants.ScreenWidth, constants.ScreenHeight),
		sound:         opts.Sound,
		onStart:       opts.OnStart,
		onPadPress:    opts.OnPadPress,
		onSkillLevel:  opts.OnSkillLevel,
		heading:       constants.TitleText,
		startLabel:    "Start",
		startVisible:  true,
		statusVisible: false,
	}, nil
}

func (s *BoardScene) Init() error {
	if err := s.BaseScene.Init(); err != nil {
		return err
	}

	for i, r := range layout.PadRects(len(s.pads), constants.ScreenWidth) {
		pad := s.pads[i]
		padObject := objects.NewPadObject(fmt.Sprintf("pad-%s", pad.Color), objects.NewPadObjectOptions{
			Pad:    pad,
			Bounds: r,
		})
		if err := s.root.AddChild(padObject.GetID(), padObject); err != nil {
			return fmt.Errorf("failed to add pad %s: %v", pad.Color, err)
		}
		s.hitTester.AddObject(padObject.Object)
		s.padObjects[pad.Color] = padObject
	}

	s.renderUI()
	return nil
}

func (s *BoardScene) ShowText(target types.Target, text string) {
	switch target {
	case types.TargetHeading:
		s.heading = text
	case types.TargetStatus:
		s.status = text
	case types.TargetStart:
		s.startLabel = text
	default:
		log.Warn("Unknown text target %s", target)
		return
	}
	s.dirty = true
}

func (s *BoardScene) SetVisibility(target types.Target, visible bool) {
	switch target {
	case types.TargetStart:
		s.startVisible = visible
	case types.TargetStatus:
		s.statusVisible = visible
	default:
		log.Warn("Unknown visibility target %s", target)
		return
	}
	s.dirty = true
}

func (s *BoardScene) SetInteractive(enabled bool) {
	s.interactive = enabled
}

func (s *BoardScene) PulsePad(color types.Color, duration time.Duration) {
	padObject, ok := s.padObjects[color]
	if !ok {
		log.Warn("Cannot pulse unknown pad %s", color)
		return
	}
	padObject.Light(duration)
	if s.sound != nil {
		s.sound.PlayTone(padObject.Pad.Tone, duration)
	}
}

func (s *BoardScene) Notify(message string) {
	s.notification = message
	s.dirty = true
}

// ShowSkillLevel reports the outcome of a skill level submission.
func (s *BoardScene) ShowSkillLevel(rounds int, err error) {
	if err != nil {
		s.skillMessage = err.Error()
		s.skillErr = true
	} else {
		s.skillMessage = fmt.Sprintf("%d rounds to win", rounds)
		s.skillErr = false
	}
	s.dirty = true
}

// SetLastResult records the result that C copies to the clipboard.
func (s *BoardScene) SetLastResult(result *types.Result) {
	s.lastSummary = result.Summary()
}

// ShowToast briefly shows text above the bottom bar.
func (s *BoardScene) ShowToast(text string, clr color.Color) {
	s.toastSeq++
	toast := objects.NewTextEffect(fmt.Sprintf("toast-%d", s.toastSeq), objects.NewTextEffectOptions{
		Text:   text,
		X:      constants.ScreenWidth / 2,
		Y:      toastY,
		Color:  clr,
		Scroll: true,
		TTL:    toastTTL,
		ZIndex: 10,
	})
	if err := s.root.AddChild(toast.GetID(), toast); err != nil {
		log.Error("Failed to show toast: %v", err)
	}
}

func (s *BoardScene) Update() error {
	if s.dirty {
		s.renderUI()
	}
	s.ui.Update()
	s.handleInput()
	return s.BaseScene.Update()
}

func (s *BoardScene) handleInput() {
	if s.notification != "" {
		if input.IsPositiveJustPressed() {
			s.closeNotification()
		}
		return
	}
	if s.skillInput != nil && s.skillInput.IsFocused() {
		return
	}

	if input.IsPositiveJustPressed() && s.startVisible {
		s.start()
		return
	}
	if input.IsCopyJustPressed() {
		s.copyLastResult()
		return
	}
	if token, ok := input.PadKeyJustPressed(); ok {
		if color, ok := s.resolvePadToken(token); ok {
			s.pressPad(color)
		}
		return
	}
	if x, y, ok := input.PointerJustPressed(); ok {
		if color, ok := s.hitTester.PadAt(float64(x), float64(y)); ok {
			s.pressPad(color)
		}
	}
}

// resolvePadToken accepts a pad key or a color name.
func (s *BoardScene) resolvePadToken(token string) (types.Color, bool) {
	for _, pad := range s.pads {
		if pad.Key == token {
			return pad.Color, true
		}
	}
	color, ok := types.ParseColor(token)
	if !ok {
		return "", false
	}
	_, ok = types.FindPad(s.pads, color)
	return color, ok
}

func (s *BoardScene) pressPad(color types.Color) {
	if !s.interactive {
		log.Trace("Ignoring press of %s while pads are disabled", color)
		return
	}
	if s.onPadPress != nil {
		s.onPadPress(color)
	}
}

func (s *BoardScene) start() {
	if s.onStart != nil {
		s.onStart()
	}
}

func (s *BoardScene) IsNotifying() bool {
	return s.notification != ""
}

func (s *BoardScene) DismissNotification() {
	s.closeNotification()
}

func (s *BoardScene) closeNotification() {
	s.notification = ""
	s.dirty = true
}

func (s *BoardScene) copyLastResult() {
	if s.lastSummary == "" {
		s.ShowToast("Play a game first", color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		return
	}
	if err := clipboard.WriteAll(s.lastSummary); err != nil {
		log.Warn("Failed to copy result to clipboard: %v", err)
		s.ShowToast("Clipboard unavailable", color.NRGBA{R: 255, G: 80, B: 80, A: 255})
		return
	}
	s.ShowToast("Result copied", color.NRGBA{R: 120, G: 230, B: 120, A: 255})
}

func (s *BoardScene) renderUI() {
	s.dirty = false
	focused := s.skillInput != nil && s.skillInput.IsFocused()

	buttonImage := &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 80, G: 80, B: 90, A: 255}),
	}
	textColor := color.NRGBA{254, 255, 255, 255}

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(16)),
		)),
	)

	headerContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	headerContainer.AddChild(widget.NewText(
		widget.TextOpts.Text(s.heading, fonts.TTFLargeFont, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	))
	if s.statusVisible {
		headerContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.status, fonts.TTFNormalFont, color.NRGBA{R: 210, G: 210, B: 220, A: 255}),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			})),
		))
	}
	rootContainer.AddChild(headerContainer)

	footerContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(16),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
		})),
	)

	if s.startVisible {
		startButton := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			})),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(s.startLabel, fonts.TTFNormalFont, &widget.ButtonTextColor{
				Idle:     textColor,
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   30,
				Right:  30,
				Top:    5,
				Bottom: 5,
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.start()
			}),
		)
		footerContainer.AddChild(startButton)
	}

	skillInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(140, 0),
		),
		widget.TextInputOpts.MobileInputMode("numeric"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(fonts.TTFNormalFont),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          textColor,
			Disabled:      color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			Caret:         textColor,
			DisabledCaret: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(fonts.TTFNormalFont, 2),
		),
		widget.TextInputOpts.Placeholder("Level 1-4"),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			s.skillValue = args.InputText
		}),
	)
	skillInput.SetText(s.skillValue)
	skillInput.SubmitEvent.AddHandler(func(args interface{}) {
		if s.onSkillLevel != nil {
			s.onSkillLevel(skillInput.GetText())
		}
		skillInput.Focus(false)
	})
	footerContainer.AddChild(skillInput)
	s.skillInput = skillInput

	if s.skillMessage != "" {
		messageColor := color.NRGBA{R: 160, G: 230, B: 160, A: 255}
		if s.skillErr {
			messageColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
		}
		footerContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.skillMessage, fonts.TTFSmallFont, messageColor),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			})),
		))
	}
	rootContainer.AddChild(footerContainer)

	ebitenUI := &ebitenui.UI{
		Container: rootContainer,
	}

	if s.notification != "" {
		ebitenUI.AddWindow(s.notificationWindow(buttonImage, textColor))
	}

	if focused {
		skillInput.Focus(true)
	}
	s.ui = ebitenUI
}

func (s *BoardScene) notificationWindow(buttonImage *widget.ButtonImage, textColor color.Color) *widget.Window {
	windowContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.NRGBA{R: 50, G: 50, B: 60, A: 245})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(20)),
		)),
	)
	windowContainer.AddChild(widget.NewText(
		widget.TextOpts.Text(s.notification, fonts.TTFSmallFont, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	))
	windowContainer.AddChild(widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text("OK", fonts.TTFNormalFont, &widget.ButtonTextColor{
			Idle:     textColor,
			Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.ButtonOpts.TextPadding(widget.Insets{
			Left:   30,
			Right:  30,
			Top:    5,
			Bottom: 5,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.closeNotification()
		}),
	))

	window := widget.NewWindow(
		widget.WindowOpts.Contents(windowContainer),
		widget.WindowOpts.Modal(),
		widget.WindowOpts.CloseMode(widget.CLICK_OUT),
		widget.WindowOpts.ClosedHandler(func(args *widget.WindowClosedEventArgs) {
			s.closeNotification()
		}),
	)

	x, y := window.Contents.PreferredSize()
	r := goimage.Rect(0, 0, x, y)
	r = r.Add(goimage.Point{X: (constants.ScreenWidth - x) / 2, Y: (constants.ScreenHeight - y) / 2})
	window.SetLocation(r)
	return window
}

func (s *BoardScene) Draw(screen *ebiten.Image) {
	s.BaseScene.Draw(screen)
	s.ui.Draw(screen)
}
