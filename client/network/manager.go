package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/cbodonnell/simon/pkg/queue"
)

const (
	// PingInterval is how often the round trip time is measured
	PingInterval = 5 * time.Second
	// MaxRecentRTTs is the number of samples kept for the ping estimate
	MaxRecentRTTs = 10
	// ConnectTimeout bounds the dial and the wait for the hello message
	ConnectTimeout = 10 * time.Second
)

// NetworkManager connects the client to a remote game session.
type NetworkManager struct {
	serverMessageQueue queue.Queue[*messages.Message]
	wsClient           *WSClient
	helloChan          chan *messages.ServerHello
	pongChan           chan *messages.ServerPong
	errChan            chan error
	cancelClientCtx    context.CancelFunc
	clientWaitGroup    *sync.WaitGroup
	hello              *messages.ServerHello
	rtts               *rttWindow
}

type NewNetworkManagerOptions struct {
	ServerURL string
	Player    string
}

// NewNetworkManager creates a new network manager.
func NewNetworkManager(opts NewNetworkManagerOptions) *NetworkManager {
	serverMessageQueue := queue.NewInMemoryQueue[*messages.Message](queue.QueueBufferSize)
	helloChan := make(chan *messages.ServerHello, 1)
	pongChan := make(chan *messages.ServerPong, 1)

	return &NetworkManager{
		serverMessageQueue: serverMessageQueue,
		wsClient: NewWSClient(NewWSClientOptions{
			ServerURL:    opts.ServerURL,
			Player:       opts.Player,
			MessageQueue: serverMessageQueue,
			HelloChan:    helloChan,
			PongChan:     pongChan,
		}),
		helloChan:       helloChan,
		pongChan:        pongChan,
		errChan:         make(chan error, 1),
		clientWaitGroup: &sync.WaitGroup{},
		rtts:            newRTTWindow(MaxRecentRTTs),
	}
}

// Start connects to the server and waits for the session hello.
func (m *NetworkManager) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelClientCtx = cancel

	connectCtx, cancelConnect := context.WithTimeout(ctx, ConnectTimeout)
	defer cancelConnect()
	if err := m.wsClient.Connect(connectCtx); err != nil {
		cancel()
		return err
	}

	m.clientWaitGroup.Add(1)
	go func() {
		defer m.clientWaitGroup.Done()
		m.errChan <- m.wsClient.HandleMessages(ctx)
	}()

	select {
	case err := <-m.errChan:
		cancel()
		return fmt.Errorf("connection closed before session started: %v", err)
	case <-connectCtx.Done():
		m.Stop()
		return fmt.Errorf("timed out waiting for session: %v", connectCtx.Err())
	case m.hello = <-m.helloChan:
		log.Info("Joined session %s", m.hello.SessionID)
	}

	m.clientWaitGroup.Add(1)
	go func() {
		defer m.clientWaitGroup.Done()
		m.pingLoop(ctx)
	}()

	return nil
}

// Stop closes the connection and waits for the client goroutines.
func (m *NetworkManager) Stop() {
	if m.cancelClientCtx == nil {
		return
	}
	m.cancelClientCtx()
	if err := m.wsClient.Close(); err != nil {
		log.Debug("Failed to close WebSocket connection: %v", err)
	}
	m.clientWaitGroup.Wait()
}

// Err returns a channel that receives the error that ended the connection.
func (m *NetworkManager) Err() <-chan error {
	return m.errChan
}

func (m *NetworkManager) Hello() *messages.ServerHello {
	return m.hello
}

// ServerMessages drains the messages received since the last call.
func (m *NetworkManager) ServerMessages() []*messages.Message {
	return m.serverMessageQueue.ReadAllMessages()
}

func (m *NetworkManager) SendStart(ctx context.Context) error {
	return m.send(ctx, messages.MessageTypeClientStart, nil)
}

func (m *NetworkManager) SendPress(ctx context.Context, color string) error {
	return m.send(ctx, messages.MessageTypeClientPress, &messages.ClientPress{Color: color})
}

func (m *NetworkManager) SendSkillLevel(ctx context.Context, value string) error {
	return m.send(ctx, messages.MessageTypeClientSkillLevel, &messages.ClientSkillLevel{Value: value})
}

func (m *NetworkManager) send(ctx context.Context, messageType messages.MessageType, payload interface{}) error {
	var sessionID string
	if m.hello != nil {
		sessionID = m.hello.SessionID
	}
	msg, err := messages.NewMessage(sessionID, messageType, payload)
	if err != nil {
		return err
	}
	if err := m.wsClient.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s message: %v", messageType, err)
	}
	return nil
}

func (m *NetworkManager) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	for {
		if err := m.send(ctx, messages.MessageTypeClientPing, &messages.ClientPing{Timestamp: time.Now().UnixMilli()}); err != nil {
			log.Debug("Failed to ping server: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case pong := <-m.pongChan:
			m.rtts.Record(time.Now().UnixMilli() - pong.ClientTimestamp)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		case <-ticker.C:
			log.Debug("No pong within %s", PingInterval)
		}
	}
}

// Ping returns the average round trip time to the server in milliseconds.
func (m *NetworkManager) Ping() float64 {
	return m.rtts.Mean()
}
