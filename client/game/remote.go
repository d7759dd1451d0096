package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/simon/client/network"
	"github.com/cbodonnell/simon/client/scenes"
	"github.com/cbodonnell/simon/client/ui"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/messages"
)

const (
	// SendTimeout bounds a single message write to the server
	SendTimeout = 5 * time.Second
	// outgoingBufferSize is the number of messages waiting to be sent
	outgoingBufferSize = 64
)

// RemoteConnection is the part of the network manager the remote driver uses.
type RemoteConnection interface {
	Hello() *messages.ServerHello
	ServerMessages() []*messages.Message
	Err() <-chan error
	Ping() float64
	SendStart(ctx context.Context) error
	SendPress(ctx context.Context, color string) error
	SendSkillLevel(ctx context.Context, value string) error
	Stop()
}

var _ RemoteConnection = &network.NetworkManager{}

// RemoteDriver plays in a session hosted by the server. Input is forwarded
// in order by a single sender goroutine and server output is applied to the
// board on Update.
type RemoteDriver struct {
	board    *scenes.BoardScene
	conn     RemoteConnection
	pads     []types.Pad
	outgoing chan func(ctx context.Context) error
	sendErr  chan error
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

type NewRemoteDriverOptions struct {
	// Connection must already be started.
	Connection RemoteConnection
}

var _ Driver = &RemoteDriver{}

func NewRemoteDriver(opts NewRemoteDriverOptions) (*RemoteDriver, error) {
	hello := opts.Connection.Hello()
	if hello == nil {
		return nil, fmt.Errorf("connection has no session")
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &RemoteDriver{
		conn:     opts.Connection,
		pads:     resolvePads(hello.Pads),
		outgoing: make(chan func(ctx context.Context) error, outgoingBufferSize),
		sendErr:  make(chan error, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go d.sendLoop()
	return d, nil
}

// resolvePads restores the display colors, which are not sent over the wire.
func resolvePads(remote []types.Pad) []types.Pad {
	if len(remote) == 0 {
		return types.DefaultPads()
	}
	defaults := types.DefaultPads()
	pads := make([]types.Pad, 0, len(remote))
	for _, pad := range remote {
		if known, ok := types.FindPad(defaults, pad.Color); ok {
			pad.Fill = known.Fill
			if pad.Key == "" {
				pad.Key = known.Key
			}
		}
		pads = append(pads, pad)
	}
	return pads
}

func (d *RemoteDriver) Pads() []types.Pad {
	return d.pads
}

func (d *RemoteDriver) Attach(board *scenes.BoardScene) error {
	d.board = board
	return nil
}

func (d *RemoteDriver) Start() {
	d.send(d.conn.SendStart)
}

func (d *RemoteDriver) PressPad(color types.Color) {
	d.send(func(ctx context.Context) error {
		return d.conn.SendPress(ctx, color.String())
	})
}

func (d *RemoteDriver) SetSkillLevel(value string) {
	d.send(func(ctx context.Context) error {
		return d.conn.SendSkillLevel(ctx, value)
	})
}

func (d *RemoteDriver) send(fn func(ctx context.Context) error) {
	select {
	case d.outgoing <- fn:
	default:
		log.Warn("Dropping input: outgoing buffer is full")
	}
}

func (d *RemoteDriver) sendLoop() {
	defer close(d.done)
	for {
		select {
		case <-d.ctx.Done():
			return
		case fn := <-d.outgoing:
			ctx, cancel := context.WithTimeout(d.ctx, SendTimeout)
			err := fn(ctx)
			cancel()
			if err != nil && d.ctx.Err() == nil {
				select {
				case d.sendErr <- err:
				default:
				}
				return
			}
		}
	}
}

func (d *RemoteDriver) Update() error {
	select {
	case err := <-d.conn.Err():
		return &ui.ActionableError{Message: "Lost connection to the server", Err: err}
	case err := <-d.sendErr:
		return &ui.ActionableError{Message: "Lost connection to the server", Err: fmt.Errorf("failed to send input: %v", err)}
	default:
	}

	for _, msg := range d.conn.ServerMessages() {
		if err := d.apply(msg); err != nil {
			log.Warn("Failed to apply %s message: %v", msg.Type, err)
		}
	}
	return nil
}

// apply renders one server message on the board.
func (d *RemoteDriver) apply(msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeServerText:
		payload := &messages.ServerText{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		d.board.ShowText(payload.Target, payload.Text)
	case messages.MessageTypeServerVisibility:
		payload := &messages.ServerVisibility{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		d.board.SetVisibility(payload.Target, payload.Visible)
	case messages.MessageTypeServerInteractive:
		payload := &messages.ServerInteractive{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		d.board.SetInteractive(payload.Enabled)
	case messages.MessageTypeServerPulse:
		payload := &messages.ServerPulse{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		d.board.PulsePad(payload.Color, time.Duration(payload.DurationMs)*time.Millisecond)
	case messages.MessageTypeServerNotify:
		payload := &messages.ServerNotify{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		d.board.Notify(payload.Message)
	case messages.MessageTypeServerSkillLevel:
		payload := &messages.ServerSkillLevel{}
		if err := msg.DecodePayload(payload); err != nil {
			return err
		}
		var err error
		if payload.Error != "" {
			err = errors.New(payload.Error)
		}
		d.board.ShowSkillLevel(payload.MaxRoundCount, err)
	case messages.MessageTypeServerResult:
		result := &types.Result{}
		if err := msg.DecodePayload(result); err != nil {
			return err
		}
		d.board.SetLastResult(result)
	default:
		return fmt.Errorf("unexpected message type")
	}
	return nil
}

func (d *RemoteDriver) Status() string {
	return fmt.Sprintf("Session: %s, ping %0.1fms", d.conn.Hello().SessionID, d.conn.Ping())
}

func (d *RemoteDriver) Close() {
	d.cancel()
	<-d.done
	d.conn.Stop()
}
