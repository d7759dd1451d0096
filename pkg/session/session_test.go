package session

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, results chan<- *types.Result) *Session {
	t.Helper()
	s, err := NewSession(NewSessionOptions{
		ID:      "session-1",
		Player:  "ada",
		Results: results,
		Rand:    rand.New(rand.NewSource(7)),
		Now:     func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s
}

// drain returns every message currently buffered on the outbound channel.
func drain(s *Session) []*messages.Message {
	var out []*messages.Message
	for {
		select {
		case msg := <-s.outbound:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func ofType(msgs []*messages.Message, messageType messages.MessageType) []*messages.Message {
	var out []*messages.Message
	for _, msg := range msgs {
		if msg.Type == messageType {
			out = append(out, msg)
		}
	}
	return out
}

func enqueue(t *testing.T, s *Session, messageType messages.MessageType, payload interface{}) {
	t.Helper()
	msg, err := messages.NewMessage(s.ID(), messageType, payload)
	require.NoError(t, err)
	require.NoError(t, s.Enqueue(msg))
}

// startAndWatch starts a game and plays back the first round, returning the pulsed color.
func startAndWatch(t *testing.T, s *Session) types.Color {
	t.Helper()
	ctx := context.Background()
	enqueue(t, s, messages.MessageTypeClientStart, nil)
	require.True(t, s.Tick(ctx, 0))
	drain(s)

	require.True(t, s.Tick(ctx, constants.ComputerTurnDuration(1)))
	pulses := ofType(drain(s), messages.MessageTypeServerPulse)
	require.Len(t, pulses, 1)
	pulse := &messages.ServerPulse{}
	require.NoError(t, pulses[0].DecodePayload(pulse))
	return pulse.Color
}

func TestNewSession_generatesID(t *testing.T) {
	s, err := NewSession(NewSessionOptions{})
	require.NoError(t, err)
	assert.Len(t, s.ID(), 36)
}

func TestSession_Start(t *testing.T) {
	s := newTestSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	hello := <-s.Outbound()
	require.Equal(t, messages.MessageTypeServerHello, hello.Type)
	payload := &messages.ServerHello{}
	require.NoError(t, hello.DecodePayload(payload))
	assert.Equal(t, "session-1", payload.SessionID)
	assert.Equal(t, constants.MaxRoundCount, payload.MaxRoundCount)
	assert.Len(t, payload.Pads, 4)

	cancel()
	<-done
	_, ok := <-s.Outbound()
	assert.False(t, ok)
}

func TestSession_Tick_start(t *testing.T) {
	s := newTestSession(t, nil)
	enqueue(t, s, messages.MessageTypeClientStart, nil)
	require.True(t, s.Tick(context.Background(), 0))

	msgs := drain(s)
	require.NotEmpty(t, msgs)
	texts := ofType(msgs, messages.MessageTypeServerText)
	require.Len(t, texts, 2)
	heading := &messages.ServerText{}
	require.NoError(t, texts[1].DecodePayload(heading))
	assert.Equal(t, types.TargetHeading, heading.Target)
	assert.Equal(t, "Round 1 of 8", heading.Text)
	assert.Len(t, s.controller.State().ComputerSequence, 1)
}

func TestSession_Tick_ignoresPressWhileDisabled(t *testing.T) {
	s := newTestSession(t, nil)
	enqueue(t, s, messages.MessageTypeClientPress, &messages.ClientPress{Color: "red"})
	require.True(t, s.Tick(context.Background(), 0))

	assert.Empty(t, drain(s))
	assert.Empty(t, s.controller.State().PlayerSequence)
}

func TestSession_Tick_correctPress(t *testing.T) {
	s := newTestSession(t, nil)
	color := startAndWatch(t, s)

	enqueue(t, s, messages.MessageTypeClientPress, &messages.ClientPress{Color: string(color)})
	require.True(t, s.Tick(context.Background(), 0))

	msgs := drain(s)
	assert.Len(t, ofType(msgs, messages.MessageTypeServerPulse), 1)
	texts := ofType(msgs, messages.MessageTypeServerText)
	require.Len(t, texts, 1)
	status := &messages.ServerText{}
	require.NoError(t, texts[0].DecodePayload(status))
	assert.Equal(t, constants.KeepGoingText, status.Text)
	assert.Equal(t, 2, s.controller.State().RoundCount)
}

func TestSession_Tick_mismatchReportsResult(t *testing.T) {
	results := make(chan *types.Result, 1)
	s := newTestSession(t, results)
	color := startAndWatch(t, s)

	wrong := types.ColorRed
	if color == types.ColorRed {
		wrong = types.ColorGreen
	}
	enqueue(t, s, messages.MessageTypeClientPress, &messages.ClientPress{Color: string(wrong)})
	require.True(t, s.Tick(context.Background(), 0))

	msgs := drain(s)
	notifications := ofType(msgs, messages.MessageTypeServerNotify)
	require.Len(t, notifications, 1)
	notify := &messages.ServerNotify{}
	require.NoError(t, notifications[0].DecodePayload(notify))
	assert.Equal(t, constants.MismatchMessage, notify.Message)
	assert.Len(t, ofType(msgs, messages.MessageTypeServerResult), 1)
	assert.Empty(t, ofType(msgs, messages.MessageTypeServerError))

	result := <-results
	assert.Equal(t, types.OutcomeMismatch, result.Outcome)
	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, "ada", result.Player)
	assert.Equal(t, 0, result.RoundsCompleted)
}

func TestSession_Tick_skillLevel(t *testing.T) {
	tests := []struct {
		value     string
		wantMax   int
		wantError string
	}{
		{value: "2", wantMax: constants.MaxRoundCount},
		{value: "9", wantError: constants.SkillLevelErrorMsg},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := newTestSession(t, nil)
			enqueue(t, s, messages.MessageTypeClientSkillLevel, &messages.ClientSkillLevel{Value: tt.value})
			require.True(t, s.Tick(context.Background(), 0))

			msgs := drain(s)
			require.Len(t, msgs, 1)
			reply := &messages.ServerSkillLevel{}
			require.NoError(t, msgs[0].DecodePayload(reply))
			assert.Equal(t, tt.value, reply.Value)
			assert.Equal(t, tt.wantMax, reply.MaxRoundCount)
			assert.Equal(t, tt.wantError, reply.Error)
		})
	}
}

func TestSession_Tick_ping(t *testing.T) {
	s := newTestSession(t, nil)
	enqueue(t, s, messages.MessageTypeClientPing, &messages.ClientPing{Timestamp: 42})
	require.True(t, s.Tick(context.Background(), 0))

	msgs := drain(s)
	require.Len(t, msgs, 1)
	pong := &messages.ServerPong{}
	require.NoError(t, msgs[0].DecodePayload(pong))
	assert.Equal(t, int64(42), pong.ClientTimestamp)
}

func TestSession_Tick_unknownMessage(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.Enqueue(&messages.Message{Type: "dance"}))
	require.True(t, s.Tick(context.Background(), 0))

	msgs := drain(s)
	require.Len(t, msgs, 1)
	assert.Equal(t, messages.MessageTypeServerError, msgs[0].Type)
}

func TestSession_Tick_cancelled(t *testing.T) {
	s := newTestSession(t, nil)
	enqueue(t, s, messages.MessageTypeClientPing, &messages.ClientPing{Timestamp: 1})
	for i := 0; i < OutboundChannelSize; i++ {
		s.outbound <- &messages.Message{Type: messages.MessageTypeServerPong}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, s.Tick(ctx, 0))
}
