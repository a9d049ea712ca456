package session

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long an unused session is kept.
const DefaultIdleTimeout = 12 * time.Hour

// sweepInterval bounds how often Start scans for idle sessions.
const sweepInterval = time.Minute

// Store keeps live sessions in memory. Losing it loses nothing but
// navigation position; the backend stays authoritative for all data.
//
// Sessions end at logout or after idleTimeout without a request. Idle
// sessions are swept lazily from Start, at most once per sweepInterval.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	lastSeen    map[string]time.Time
	idleTimeout time.Duration // 0 = sessions live until logout
	lastSweep   time.Time
	now         func() time.Time
	logger      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIdleTimeout sets how long an unused session survives. 0 disables eviction.
func WithIdleTimeout(d time.Duration) StoreOption {
	return func(st *Store) { st.idleTimeout = d }
}

// NewStore creates an empty session store
func NewStore(logger *slog.Logger, opts ...StoreOption) *Store {
	st := &Store{
		sessions:    make(map[string]*Session),
		lastSeen:    make(map[string]time.Time),
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Get returns the session with the given id, or nil. Idle sessions are
// reported as gone even before the next sweep removes them.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok || st.idle(id, st.now()) {
		return nil
	}
	return sess
}

// Start returns the existing session for id, refreshing its token, or
// creates a new one. A session whose company changed is replaced.
func (st *Store) Start(id, userID, companyID, token string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweep(now)

	if sess, ok := st.sessions[id]; ok && !st.idle(id, now) && sess.CompanyID == companyID && sess.UserID == userID {
		sess.SetToken(token)
		st.lastSeen[id] = now
		return sess
	}

	sess := New(id, userID, companyID, token)
	st.sessions[id] = sess
	st.lastSeen[id] = now
	st.logger.Info("session started",
		"session_id", id,
		"user_id", userID,
		"company_id", companyID,
	)
	return sess
}

// End clears a session (logout). Returns false if it did not exist.
func (st *Store) End(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	st.remove(id)
	st.logger.Info("session ended", "session_id", id)
	return true
}

// Len returns the number of stored sessions, idle ones included until swept.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// idle reports whether the session has gone unused past the timeout. Caller holds mu.
func (st *Store) idle(id string, now time.Time) bool {
	return st.idleTimeout > 0 && now.Sub(st.lastSeen[id]) > st.idleTimeout
}

// sweep drops idle sessions. Caller holds mu for writing.
func (st *Store) sweep(now time.Time) {
	if st.idleTimeout <= 0 || now.Sub(st.lastSweep) < sweepInterval {
		return
	}
	st.lastSweep = now

	evicted := 0
	for id := range st.sessions {
		if st.idle(id, now) {
			st.remove(id)
			evicted++
		}
	}
	if evicted > 0 {
		st.logger.Info("idle sessions evicted", "count", evicted, "remaining", len(st.sessions))
	}
}

func (st *Store) remove(id string) {
	delete(st.sessions, id)
	delete(st.lastSeen, id)
}
