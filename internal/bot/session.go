package bot

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"shoejack/internal/game"
)

// session is one chat's table. The shoe lives as long as the session.
type session struct {
	chatID  int64
	table   *game.Table
	// actions holds at most one tap, sent only while waiting is set
	actions chan game.Action
	notify  func(text string)
	timeout time.Duration
	log     logrus.FieldLogger

	// account is held while the chat's player is read, changed and saved
	account sync.Mutex

	mu      sync.Mutex
	playing bool
	waiting bool
	lines   []string
}

// begin marks a round as started. It returns false if one is already running.
func (s *session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return false
	}

	s.playing = true
	s.lines = s.lines[:0]
	return true
}

func (s *session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *session) isPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// flush returns the buffered event lines and clears them
func (s *session) flush() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.Join(s.lines, "\n")
	s.lines = s.lines[:0]
	return text
}

// Observe buffers a line per event until the next prompt or the result
func (s *session) Observe(ev game.Event) {
	line := formatEvent(ev)
	if line == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

// Decide shows the table with hit/stand buttons and waits for a tap.
// Standing is assumed when no tap arrives within the timeout; a timeout
// of zero or less stands straight away.
func (s *session) Decide(game.PlayerView) game.Action {
	s.mu.Lock()
	s.waiting = true
	text := strings.Join(s.lines, "\n")
	s.lines = s.lines[:0]
	s.mu.Unlock()

	s.notify(text)

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case a := <-s.actions:
		return a
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.waiting = false

	// a tap may have landed while the timer fired
	select {
	case a := <-s.actions:
		return a
	default:
	}

	s.log.WithField("chat", s.chatID).Info("no action before the timeout, standing")
	return game.ActionStand
}

// act hands a tapped action to the waiting round. It returns false if
// no round is waiting for one.
func (s *session) act(a game.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.waiting {
		return false
	}

	s.waiting = false
	s.actions <- a
	return true
}

// sessionManager tracks the chats' sessions
type sessionManager struct {
	sessions map[int64]*session
	mu       sync.RWMutex
}

func newSessionManager() *sessionManager {
	return &sessionManager{
		sessions: make(map[int64]*session),
	}
}

func (m *sessionManager) Get(chatID int64) *session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[chatID]
}

// GetOrCreate returns the chat's session, calling create if there is none
func (m *sessionManager) GetOrCreate(chatID int64, create func() *session) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		s = create()
		m.sessions[chatID] = s
	}

	return s
}
