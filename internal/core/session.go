package core

// session.go holds the per-user session state: the two loaded tables and
// the joined report derived from them. A Session is an immutable snapshot;
// uploading a new file builds a new snapshot with the report recomputed,
// it never mutates a snapshot another request may be reading.

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session survives before the sweep
// removes it.
const DefaultSessionTTL = 2 * time.Hour

// Session is an immutable snapshot of one user's loaded data.
// Inventory/Status are nil until the corresponding file is uploaded;
// Report is non-nil once both are present.
type Session struct {
	ID        string
	CreatedAt time.Time
	Inventory *InventoryTable
	Status    *StatusTable
	Report    *Report
}

// Ready reports whether both sources are loaded.
func (s *Session) Ready() bool {
	return s != nil && s.Inventory != nil && s.Status != nil
}

// withInventory returns a new snapshot with the inventory replaced and the
// report rebuilt if possible.
func (s *Session) withInventory(inv InventoryTable) *Session {
	next := &Session{ID: s.ID, CreatedAt: s.CreatedAt, Inventory: &inv, Status: s.Status}
	next.rebuild()
	return next
}

// withStatus returns a new snapshot with the status table replaced and the
// report rebuilt if possible.
func (s *Session) withStatus(status StatusTable) *Session {
	next := &Session{ID: s.ID, CreatedAt: s.CreatedAt, Inventory: s.Inventory, Status: &status}
	next.rebuild()
	return next
}

func (s *Session) rebuild() {
	if s.Inventory == nil || s.Status == nil {
		return
	}
	report := BuildReport(*s.Inventory, *s.Status)
	s.Report = &report
}

// SessionStore keeps live sessions in memory, keyed by id. Idle sessions
// are swept after their TTL. There is no persistence: a restart clears all
// sessions and the user re-uploads.
type SessionStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewSessionStore creates a store sweeping idle sessions after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	st := &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
	}
	go st.sweep()
	return st
}

// Create registers a new empty session and returns it.
func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = &sessionEntry{session: s, lastSeen: time.Now()}
	st.mu.Unlock()
	return s
}

// Get returns the live session for id, or ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = time.Now()
	return entry.session, nil
}

// SetInventory swaps in a new inventory table for the session, returning
// the updated snapshot.
func (st *SessionStore) SetInventory(id string, inv InventoryTable) (*Session, error) {
	return st.update(id, func(s *Session) *Session { return s.withInventory(inv) })
}

// SetStatus swaps in a new status table for the session, returning the
// updated snapshot.
func (st *SessionStore) SetStatus(id string, status StatusTable) (*Session, error) {
	return st.update(id, func(s *Session) *Session { return s.withStatus(status) })
}

func (st *SessionStore) update(id string, fn func(*Session) *Session) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	next := fn(entry.session)
	entry.session = next
	entry.lastSeen = time.Now()
	return next, nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// sweep removes idle sessions once a minute.
func (st *SessionStore) sweep() {
	for {
		time.Sleep(time.Minute)
		cutoff := time.Now().Add(-st.ttl)
		st.mu.Lock()
		for id, entry := range st.sessions {
			if entry.lastSeen.Before(cutoff) {
				delete(st.sessions, id)
			}
		}
		st.mu.Unlock()
	}
}
