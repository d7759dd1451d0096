package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/simon/pkg/game"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/cbodonnell/simon/pkg/queue"
	"github.com/cbodonnell/simon/pkg/timer"
	"github.com/google/uuid"
)

const (
	// DefaultTickInterval is how often a session advances its game
	DefaultTickInterval = 20 * time.Millisecond
	// InboundQueueSize is the capacity of the client message queue of a session
	InboundQueueSize = 256
	// OutboundChannelSize is the capacity of the server message channel of a session
	OutboundChannelSize = 256
)

// Session runs one game on behalf of one remote client.
// Client messages are queued by the network layer and applied on the
// session goroutine, so the controller is only ever touched from Start.
type Session struct {
	id           string
	player       string
	controller   *game.Controller
	scheduler    *timer.TickScheduler
	presenter    *messagePresenter
	inbound      queue.Queue[*messages.Message]
	outbound     chan *messages.Message
	results      chan<- *types.Result
	tickInterval time.Duration
	logger       *log.Logger
}

type NewSessionOptions struct {
	// ID defaults to a random UUID.
	ID     string
	Player string
	// Results receives the result of every finished game. Optional.
	Results      chan<- *types.Result
	TickInterval time.Duration
	Rand         *rand.Rand
	Now          func() time.Time
}

func NewSession(opts NewSessionOptions) (*Session, error) {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}

	s := &Session{
		id:           id,
		player:       opts.Player,
		scheduler:    timer.NewTickScheduler(),
		inbound:      queue.NewInMemoryQueue[*messages.Message](InboundQueueSize),
		outbound:     make(chan *messages.Message, OutboundChannelSize),
		results:      opts.Results,
		tickInterval: tickInterval,
		logger:       log.WithComponent("session"),
	}
	s.presenter = &messagePresenter{session: s}

	controller, err := game.NewController(game.NewControllerOptions{
		Presenter:  s.presenter,
		Scheduler:  s.scheduler,
		Rand:       opts.Rand,
		OnGameOver: s.handleGameOver,
		SessionID:  id,
		Player:     opts.Player,
		Now:        opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %v", err)
	}
	s.controller = controller

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Outbound returns the channel of messages to write to the client.
// It is closed when Start returns.
func (s *Session) Outbound() <-chan *messages.Message {
	return s.outbound
}

// Enqueue queues a client message for the next tick.
func (s *Session) Enqueue(msg *messages.Message) error {
	if err := s.inbound.Enqueue(msg); err != nil {
		return fmt.Errorf("failed to enqueue message for session %s: %v", s.id, err)
	}
	return nil
}

// Start sends the hello message and runs the session loop until ctx is done.
func (s *Session) Start(ctx context.Context) {
	defer close(s.outbound)

	hello, err := messages.NewMessage(s.id, messages.MessageTypeServerHello, &messages.ServerHello{
		SessionID:     s.id,
		Pads:          s.controller.Pads(),
		MaxRoundCount: s.controller.MaxRoundCount(),
	})
	if err != nil {
		s.logger.Error("Failed to build hello message: %v", err)
		return
	}
	if !s.send(ctx, hello) {
		return
	}

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			if n := s.scheduler.Pending(); n > 0 {
				s.logger.Debug("Session %s stopped with %d pending callbacks", s.id, n)
			}
			return
		case t := <-ticker.C:
			dt := t.Sub(last)
			last = t
			if !s.Tick(ctx, dt) {
				return
			}
		}
	}
}

// Tick applies queued client messages, advances the game clock by dt and
// flushes the resulting server messages. It returns false if ctx was
// cancelled while flushing.
func (s *Session) Tick(ctx context.Context, dt time.Duration) bool {
	for _, msg := range s.inbound.ReadAllMessages() {
		if err := s.handleMessage(msg); err != nil {
			s.logger.Warn("Failed to handle %s message: %v", msg.Type, err)
			s.presenter.queue(messages.MessageTypeServerError, &messages.ServerError{Reason: err.Error()})
		}
	}
	if n := s.scheduler.Advance(dt); n > 0 {
		s.logger.Trace("Session %s ran %d callbacks", s.id, n)
	}
	for _, msg := range s.presenter.drain() {
		if !s.send(ctx, msg) {
			return false
		}
	}
	return true
}

func (s *Session) send(ctx context.Context, msg *messages.Message) bool {
	select {
	case <-ctx.Done():
		return false
	case s.outbound <- msg:
		return true
	}
}

func (s *Session) handleMessage(msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeClientStart:
		s.controller.HandleStart()
	case messages.MessageTypeClientPress:
		press := &messages.ClientPress{}
		if err := msg.DecodePayload(press); err != nil {
			return err
		}
		if !s.presenter.interactive {
			s.logger.Trace("Ignoring press of %s while pads are disabled", press.Color)
			return nil
		}
		if err := s.controller.HandlePadClick(press.Color); err != nil && !game.IsSequenceMismatch(err) {
			return err
		}
	case messages.MessageTypeClientSkillLevel:
		level := &messages.ClientSkillLevel{}
		if err := msg.DecodePayload(level); err != nil {
			return err
		}
		reply := &messages.ServerSkillLevel{Value: level.Value}
		rounds, err := s.controller.HandleSkillLevel(level.Value)
		if err != nil {
			reply.Error = err.Error()
		} else {
			reply.MaxRoundCount = rounds
		}
		s.presenter.queue(messages.MessageTypeServerSkillLevel, reply)
	case messages.MessageTypeClientPing:
		ping := &messages.ClientPing{}
		if err := msg.DecodePayload(ping); err != nil {
			return err
		}
		s.presenter.queue(messages.MessageTypeServerPong, &messages.ServerPong{ClientTimestamp: ping.Timestamp})
	default:
		return fmt.Errorf("unexpected message type %q", msg.Type)
	}
	return nil
}

func (s *Session) handleGameOver(result *types.Result) {
	s.logger.Info("Session %s finished: %s in round %d", s.id, result.Outcome, result.Round)
	s.presenter.queue(messages.MessageTypeServerResult, result)
	if s.results == nil {
		return
	}
	select {
	case s.results <- result:
	default:
		s.logger.Warn("Dropping result of session %s: results channel is full", s.id)
	}
}
