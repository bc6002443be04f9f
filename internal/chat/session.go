package chat

import (
	"sync"
	"time"
)

const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)

// Message is one committed transcript entry. RoleName, ImageURL and Avatar
// are populated only on assistant messages.
type Message struct {
	Speaker  string
	Text     string
	RoleName string
	ImageURL string
	Avatar   string
}

// Session owns one in-memory transcript. Messages are appended in committed
// user/assistant pairs and removed only by Clear; nothing is ever persisted.
// Each session is independent — there is no shared registry state inside it.
type Session struct {
	mu       sync.RWMutex
	messages []Message
	touched  time.Time
}

func NewSession() *Session {
	return &Session{touched: time.Now()}
}

// Messages returns a copy of the transcript in chronological order.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Clear discards the transcript entirely. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.touched = time.Now()
}

// LastActive reports the time of the last append, clear, or creation.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touched
}

// appendTurn commits a completed turn: exactly one user message followed by
// its assistant reply. A turn never contributes fewer or more entries.
func (s *Session) appendTurn(user, assistant Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, user, assistant)
	s.touched = time.Now()
}
