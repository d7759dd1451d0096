package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
)

const (
	// DefaultMaxSessions is the default limit of concurrent sessions
	DefaultMaxSessions = 1024
)

// Manager tracks the live sessions of a server.
type Manager struct {
	sessions     map[string]*Session
	sessionsLock sync.RWMutex
	maxSessions  int
	results      chan<- *types.Result
	tickInterval time.Duration
}

type NewManagerOptions struct {
	MaxSessions  int
	Results      chan<- *types.Result
	TickInterval time.Duration
}

func NewManager(opts NewManagerOptions) *Manager {
	maxSessions := opts.MaxSessions
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		maxSessions:  maxSessions,
		results:      opts.Results,
		tickInterval: opts.TickInterval,
	}
}

// Create registers a new session for player. The caller is responsible for
// starting it and for removing it once the connection ends.
func (m *Manager) Create(player string) (*Session, error) {
	m.sessionsLock.Lock()
	defer m.sessionsLock.Unlock()

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("session limit of %d reached", m.maxSessions)
	}

	s, err := NewSession(NewSessionOptions{
		Player:       player,
		Results:      m.results,
		TickInterval: m.tickInterval,
	})
	if err != nil {
		return nil, err
	}
	if _, ok := m.sessions[s.ID()]; ok {
		return nil, fmt.Errorf("duplicate session ID %s", s.ID())
	}
	m.sessions[s.ID()] = s

	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.sessionsLock.RLock()
	defer m.sessionsLock.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) {
	m.sessionsLock.Lock()
	defer m.sessionsLock.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Count() int {
	m.sessionsLock.RLock()
	defer m.sessionsLock.RUnlock()
	return len(m.sessions)
}
