package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/cbodonnell/simon/pkg/network"
	"github.com/cbodonnell/simon/pkg/queue"
	"nhooyr.io/websocket"
)

// WSClient represents a WebSocket client.
type WSClient struct {
	serverURL    string
	player       string
	messageQueue queue.Queue[*messages.Message]
	helloChan    chan<- *messages.ServerHello
	pongChan     chan<- *messages.ServerPong
	conn         *websocket.Conn
	writeLock    sync.Mutex
}

type NewWSClientOptions struct {
	ServerURL    string
	Player       string
	MessageQueue queue.Queue[*messages.Message]
	HelloChan    chan<- *messages.ServerHello
	PongChan     chan<- *messages.ServerPong
}

// NewWSClient creates a new WebSocket client.
func NewWSClient(opts NewWSClientOptions) *WSClient {
	return &WSClient{
		serverURL:    opts.ServerURL,
		player:       opts.Player,
		messageQueue: opts.MessageQueue,
		helloChan:    opts.HelloChan,
		pongChan:     opts.PongChan,
	}
}

// Connect establishes a connection to the WebSocket server.
func (c *WSClient) Connect(ctx context.Context) error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("failed to parse server URL: %v", err)
	}
	if c.player != "" {
		q := u.Query()
		q.Set("player", c.player)
		u.RawQuery = q.Encode()
	}

	log.Info("Connecting to WebSocket server at %s", u.Redacted())
	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	conn.SetReadLimit(messages.MessageBufferSize * 4)
	c.conn = conn
	return nil
}

// HandleMessages reads messages until the connection closes or ctx is done.
func (c *WSClient) HandleMessages(ctx context.Context) error {
	for {
		msg, err := network.ReadMessageFromWS(ctx, c.conn)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return &ErrConnectionClosedByClient{}
			}
			var closeErr websocket.CloseError
			if errors.As(err, &closeErr) {
				switch closeErr.Code {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return &ErrConnectionClosedByServer{Reason: closeErr.Reason}
				}
			}
			return fmt.Errorf("failed to read message: %v", err)
		}

		if err := c.handleMessage(ctx, msg); err != nil {
			log.Error("Failed to handle message: %v", err)
		}
	}
}

// handleMessage processes a received message.
func (c *WSClient) handleMessage(ctx context.Context, msg *messages.Message) error {
	log.Trace("Received message from WebSocket server of type %s", msg.Type)

	switch msg.Type {
	case messages.MessageTypeServerHello:
		hello := &messages.ServerHello{}
		if err := msg.DecodePayload(hello); err != nil {
			return err
		}
		select {
		case c.helloChan <- hello:
		case <-ctx.Done():
		}
	case messages.MessageTypeServerPong:
		pong := &messages.ServerPong{}
		if err := msg.DecodePayload(pong); err != nil {
			return err
		}
		select {
		case c.pongChan <- pong:
		default:
			log.Debug("Dropping late server pong")
		}
	case messages.MessageTypeServerError:
		serverErr := &messages.ServerError{}
		if err := msg.DecodePayload(serverErr); err != nil {
			return err
		}
		log.Warn("Server rejected a message: %s", serverErr.Reason)
	default:
		if err := c.messageQueue.Enqueue(msg); err != nil {
			return fmt.Errorf("failed to enqueue message: %v", err)
		}
	}

	return nil
}

// Close closes the WebSocket connection.
func (c *WSClient) Close() error {
	if c.conn == nil {
		log.Warn("WebSocket connection is already closed")
		return nil
	}
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

// SendMessage sends a message to the WebSocket server.
func (c *WSClient) SendMessage(ctx context.Context, msg *messages.Message) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return network.WriteMessageToWS(ctx, c.conn, msg)
}
