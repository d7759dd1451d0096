package session

import (
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/messages"
)

// messagePresenter turns presenter calls into server messages.
// Messages are buffered until the session flushes them at the end of a tick.
type messagePresenter struct {
	session     *Session
	interactive bool
	outbox      []*messages.Message
}

func (p *messagePresenter) ShowText(target types.Target, text string) {
	p.queue(messages.MessageTypeServerText, &messages.ServerText{Target: target, Text: text})
}

func (p *messagePresenter) SetVisibility(target types.Target, visible bool) {
	p.queue(messages.MessageTypeServerVisibility, &messages.ServerVisibility{Target: target, Visible: visible})
}

func (p *messagePresenter) SetInteractive(enabled bool) {
	p.interactive = enabled
	p.queue(messages.MessageTypeServerInteractive, &messages.ServerInteractive{Enabled: enabled})
}

func (p *messagePresenter) PulsePad(color types.Color, duration time.Duration) {
	p.queue(messages.MessageTypeServerPulse, &messages.ServerPulse{Color: color, DurationMs: duration.Milliseconds()})
}

func (p *messagePresenter) Notify(message string) {
	p.queue(messages.MessageTypeServerNotify, &messages.ServerNotify{Message: message})
}

func (p *messagePresenter) queue(messageType messages.MessageType, payload interface{}) {
	msg, err := messages.NewMessage(p.session.id, messageType, payload)
	if err != nil {
		p.session.logger.Error("Failed to build %s message: %v", messageType, err)
		return
	}
	p.outbox = append(p.outbox, msg)
}

func (p *messagePresenter) drain() []*messages.Message {
	out := p.outbox
	p.outbox = nil
	return out
}
