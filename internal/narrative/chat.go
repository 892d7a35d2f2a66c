package narrative

import (
	"strings"
	"sync"

	"github.com/aishield/shield-backend/model"
	"github.com/google/uuid"
)

// ChatSession is a role tagged Guardian conversation
type ChatSession struct {
	ID string

	mu      sync.RWMutex
	history []model.ChatMessage
}

// NewChatSession starts an empty conversation
func NewChatSession() *ChatSession {
	return &ChatSession{ID: uuid.NewString()}
}

// History returns a copy of the turns so far
func (s *ChatSession) History() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// append records a completed exchange
func (s *ChatSession) append(user, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		model.ChatMessage{Role: model.RoleUser, Text: user},
		model.ChatMessage{Role: model.RoleModel, Text: reply},
	)
}

// DisplayText appends grounding sources under the reply text
func DisplayText(reply model.ChatReply) string {
	if len(reply.GroundingURLs) == 0 {
		return reply.Text
	}
	var b strings.Builder
	b.WriteString(reply.Text)
	b.WriteString("\n\nKaynaklar:")
	for _, u := range reply.GroundingURLs {
		b.WriteString("\n- ")
		b.WriteString(u)
	}
	return b.String()
}

// Sessions keeps chat sessions by id
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*ChatSession
	limit    int
	order    []string
}

// NewSessions keeps at most limit sessions, evicting the oldest
func NewSessions(limit int) *Sessions {
	if limit <= 0 {
		limit = 256
	}
	return &Sessions{sessions: make(map[string]*ChatSession), limit: limit}
}

// Get returns the session for id, creating a new one when id is empty or unknown
func (s *Sessions) Get(id string) *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := NewChatSession()
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	if len(s.order) > s.limit {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	return sess
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
