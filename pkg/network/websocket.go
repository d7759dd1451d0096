package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/cbodonnell/simon/pkg/session"
	"nhooyr.io/websocket"
)

// WSHandler upgrades requests to websocket connections and runs one game
// session per connection.
type WSHandler struct {
	ctx            context.Context
	sessions       *session.Manager
	originPatterns []string
	logger         *log.Logger
}

type NewWSHandlerOptions struct {
	// Ctx bounds the lifetime of every session started by the handler.
	Ctx      context.Context
	Sessions *session.Manager
	// OriginPatterns lists the cross origin hosts allowed to connect.
	OriginPatterns []string
}

func NewWSHandler(opts NewWSHandlerOptions) *WSHandler {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return &WSHandler{
		ctx:            ctx,
		sessions:       opts.Sessions,
		originPatterns: opts.OriginPatterns,
		logger:         log.WithComponent("network"),
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create(r.URL.Query().Get("player"))
	if err != nil {
		h.logger.Warn("Rejecting websocket connection from %s: %v", r.RemoteAddr, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer h.sessions.Remove(s.ID())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}
	conn.SetReadLimit(messages.MessageBufferSize)
	h.logger.Debug("New WebSocket connection from %s for session %s", r.RemoteAddr, s.ID())

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	go s.Start(ctx)
	writeErr := make(chan error, 1)
	go func() {
		writeErr <- h.writeLoop(ctx, conn, s)
	}()

	err = h.readLoop(ctx, conn, s)
	cancel()
	if werr := <-writeErr; werr != nil && err == nil {
		err = werr
	}

	if err != nil && !isNormalClose(err) && !errors.Is(err, context.Canceled) {
		h.logger.Error("WebSocket connection for session %s failed: %v", s.ID(), err)
		conn.Close(websocket.StatusInternalError, "session error")
		return
	}
	h.logger.Debug("Connection closed for session %s", s.ID())
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	for {
		msg, err := ReadMessageFromWS(ctx, conn)
		if err != nil {
			return err
		}
		msg.SessionID = s.ID()
		if err := s.Enqueue(msg); err != nil {
			h.logger.Warn("Dropping %s message: %v", msg.Type, err)
		}
	}
}

// writeLoop is the only writer of conn.
func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	for msg := range s.Outbound() {
		if err := WriteMessageToWS(ctx, conn, msg); err != nil {
			return err
		}
	}
	return nil
}

func isNormalClose(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %w", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	messageType, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if messageType != websocket.MessageBinary {
		return nil, fmt.Errorf("unexpected %s frame", messageType)
	}

	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
