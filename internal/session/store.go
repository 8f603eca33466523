package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shipdocs/invoicegen/internal/domain"
)

// Session holds one operator's uploaded artifacts for the duration of a
// run. A session is owned by exactly one operator; sessions never share
// state.
type Session struct {
	ID       string
	LastSeen time.Time

	// Raw template bytes, kept untouched until the fill step.
	TemplateBytes []byte

	PI       *domain.PIDocument
	Products []domain.LineItem
	Packing  *domain.PackingDocument
	HSCodes  domain.HSCodeMap

	// Output is the serialized result of the last successful fill. It
	// is only ever replaced atomically by a complete buffer.
	Output []byte
}

// Store is an in-memory, TTL-evicting session registry.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of
// inactivity. Expired sessions are swept lazily on access.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create registers a new empty session.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	sess := &Session{
		ID:       uuid.NewString(),
		LastSeen: s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given id and refreshes its
// last-seen timestamp. An expired or unknown id yields false.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.LastSeen = s.now()
	return sess, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.sessions)
}

func (s *Store) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
