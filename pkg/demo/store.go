package demo

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"agrodesk/pkg/api"
)

var errSessionNotFound = errors.New("session not found")

type sessionStatus string

const (
	statusActive sessionStatus = "active"
	statusClosed sessionStatus = "closed"
)

type demoSession struct {
	id        string
	status    sessionStatus
	createdAt time.Time
	messages  []api.HistoryMessage
	closeAck  api.CloseResponse
}

// store keeps demo sessions in memory. Unlike the client, the demo backend
// serves concurrent requests, so access is mutex-guarded.
type store struct {
	mu       sync.RWMutex
	sessions map[string]*demoSession
}

func newStore() *store {
	return &store{sessions: make(map[string]*demoSession)}
}

func (s *store) create() *demoSession {
	sess := &demoSession{
		id:        uuid.NewString(),
		status:    statusActive,
		createdAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// appendTurn stores a user message and the bot reply as two ordered entries.
func (s *store) appendTurn(sessionID, userText, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.status != statusActive {
		return errSessionNotFound
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sess.messages = append(sess.messages,
		api.HistoryMessage{Role: "user", Content: userText, Timestamp: now},
		api.HistoryMessage{Role: "bot", Content: reply, Timestamp: now},
	)
	return nil
}

func (s *store) history(sessionID string) ([]api.HistoryMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errSessionNotFound
	}
	out := make([]api.HistoryMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

func (s *store) isActive(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return ok && sess.status == statusActive
}

// close marks the session closed. A second close returns the acknowledgement
// recorded by the first one.
func (s *store) close(sessionID string) (api.CloseResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return api.CloseResponse{}, errSessionNotFound
	}
	if sess.status == statusClosed {
		return sess.closeAck, nil
	}
	sess.status = statusClosed
	sess.closeAck = api.CloseResponse{OK: true, Message: "Session closed successfully"}
	return sess.closeAck, nil
}
