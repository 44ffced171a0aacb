// Package resultssessions stores in-progress match sessions keyed by channel.
package resultssessions

import (
	"context"
	"slices"
	"sync"
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
)

type memoryEntry struct {
	session   resultsdomain.MatchSession
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer
// than the TTL are treated as gone.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore; a ttl of zero never expires sessions.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

// live returns the unexpired session of channelID. Caller holds m.mu.
func (m *MemoryStore) live(channelID string) (memoryEntry, bool) {
	e, ok := m.sessions[channelID]
	if !ok {
		return memoryEntry{}, false
	}
	if e.expired(m.now()) {
		delete(m.sessions, channelID)
		return memoryEntry{}, false
	}
	return e, true
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// prune drops every expired session, including those of channels that never
// come back. Caller holds m.mu.
func (m *MemoryStore) prune() {
	now := m.now()
	for channelID, e := range m.sessions {
		if e.expired(now) {
			delete(m.sessions, channelID)
		}
	}
}

func (m *MemoryStore) Begin(_ context.Context, channelID string, session resultsdomain.MatchSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prune()
	session.Images = slices.Clone(session.Images)
	m.sessions[channelID] = memoryEntry{session: session, expiresAt: m.expiry()}
	return nil
}

func (m *MemoryStore) Collect(_ context.Context, channelID, imageURL string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(channelID)
	if !ok {
		return 0, resultsdomain.ErrNoSession
	}
	e.session.Images = append(e.session.Images, imageURL)
	e.expiresAt = m.expiry()
	m.sessions[channelID] = e
	return len(e.session.Images), nil
}

func (m *MemoryStore) Finish(_ context.Context, channelID string) (resultsdomain.MatchSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(channelID)
	if !ok {
		return resultsdomain.MatchSession{}, resultsdomain.ErrNoSession
	}
	delete(m.sessions, channelID)
	if e.session.Images == nil {
		e.session.Images = []string{}
	}
	return e.session, nil
}
