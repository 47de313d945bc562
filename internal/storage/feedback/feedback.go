package storage_feedback

import (
	"sort"
	"sync"
	"time"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

const (
	DefaultMaxIdle    = 24 * time.Hour
	DefaultSweepEvery = 100
)

// Store holds session swipe history in process memory, keyed
// session -> user -> ordered swipe list. Per (user, movie) history is
// depth-1: a repeated swipe overwrites action and timestamp in place
// and keeps its position in the list.
//
// All access goes through one RWMutex; readers always observe fully
// applied writes. Sessions idle past maxIdle are dropped on an
// opportunistic sweep every sweepEvery writes.
type Store struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*sessionState

	maxIdle    time.Duration
	sweepEvery int
	writes     int
	now        func() time.Time
}

type sessionState struct {
	users        map[string][]model.SwipeRecord
	lastActivity time.Time
}

type Option func(*Store)

// WithMaxIdle sets how long a session may stay untouched before a
// sweep removes it. Zero disables expiry.
func WithMaxIdle(d time.Duration) Option {
	return func(s *Store) {
		s.maxIdle = d
	}
}

func WithSweepEvery(n int) Option {
	return func(s *Store) {
		s.sweepEvery = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		sessions:   make(map[model.SessionID]*sessionState),
		maxIdle:    DefaultMaxIdle,
		sweepEvery: DefaultSweepEvery,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordSwipe upserts one swipe and returns the user's resulting
// total swipe count.
func (s *Store) RecordSwipe(sessionID model.SessionID, userName string, movieID model.MovieID, action model.SwipeAction) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.sweepEvery > 0 && s.writes%s.sweepEvery == 0 {
		s.sweepExpiredLocked()
	}

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &sessionState{users: make(map[string][]model.SwipeRecord)}
		s.sessions[sessionID] = sess
	}
	sess.lastActivity = s.now()

	records := sess.users[userName]
	for i := range records {
		if records[i].MovieID == movieID {
			records[i].Action = action
			records[i].Timestamp = s.now()
			return len(records)
		}
	}

	sess.users[userName] = append(records, model.SwipeRecord{
		MovieID:   movieID,
		Action:    action,
		Timestamp: s.now(),
	})
	return len(sess.users[userName])
}

// UserSwipes returns a copy of one user's history, empty for unknown
// session or user.
func (s *Store) UserSwipes(sessionID model.SessionID, userName string) []model.SwipeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []model.SwipeRecord{}
	}

	records := sess.users[userName]
	out := make([]model.SwipeRecord, len(records))
	copy(out, records)
	return out
}

// SessionSwipes returns a consistent deep-copied snapshot of the whole
// session, suitable for match calculation outside the lock.
func (s *Store) SessionSwipes(sessionID model.SessionID) map[string][]model.SwipeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]model.SwipeRecord)
	sess, ok := s.sessions[sessionID]
	if !ok {
		return out
	}

	for userName, records := range sess.users {
		cp := make([]model.SwipeRecord, len(records))
		copy(cp, records)
		out[userName] = cp
	}
	return out
}

// SeenFilms is the union of movie ids swiped by anyone in the
// session, ascending for deterministic output.
func (s *Store) SeenFilms(sessionID model.SessionID) []model.MovieID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []model.MovieID{}
	}

	seen := make(map[model.MovieID]struct{})
	for _, records := range sess.users {
		for _, rec := range records {
			seen[rec.MovieID] = struct{}{}
		}
	}

	ids := make([]model.MovieID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) SwipeCount(sessionID model.SessionID, userName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(sess.users[userName])
}

func (s *Store) IsFeedbackReady(sessionID model.SessionID, userName string, minSwipes int) bool {
	return s.SwipeCount(sessionID, userName) >= minSwipes
}

func (s *Store) Stats(sessionID model.SessionID) map[string]model.UserSwipeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]model.UserSwipeStats)
	sess, ok := s.sessions[sessionID]
	if !ok {
		return stats
	}

	for userName, records := range sess.users {
		us := model.UserSwipeStats{Total: len(records)}
		for _, rec := range records {
			switch rec.Action {
			case model.ActionLike:
				us.Likes++
			case model.ActionDislike:
				us.Dislikes++
			case model.ActionSkip:
				us.Skips++
			}
		}
		stats[userName] = us
	}
	return stats
}

// Clear drops a whole session. Reports whether anything was stored.
func (s *Store) Clear(sessionID model.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

func (s *Store) sweepExpiredLocked() {
	if s.maxIdle <= 0 {
		return
	}
	deadline := s.now().Add(-s.maxIdle)
	for sessionID, sess := range s.sessions {
		if sess.lastActivity.Before(deadline) {
			delete(s.sessions, sessionID)
		}
	}
}
