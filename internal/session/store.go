package session

import (
	"errors"
	"github.com/google/uuid"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	"net/http"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps every browser session in memory. Entries are always
// replaced wholesale under the lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Create() Session {
	now := s.now()
	created := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[created.ID] = created
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return created.clone()
}

// Get returns a copy of the session and extends its lifetime.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}

	current.UpdatedAt = s.now()
	s.sessions[id] = current
	return current.clone(), nil
}

// Update applies fn to a copy of the session and stores the result.
func (s *Store) Update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}

	updated := current.clone()
	fn(&updated)
	updated.ID = current.ID
	updated.UpdatedAt = s.now()
	s.sessions[id] = updated
	return updated.clone(), nil
}

// SetUser signs a user in: the user is replaced wholesale, the cookies
// the backend set while authenticating are merged and the dashboard
// starts over.
func (s *Store) SetUser(id string, user models.User, cookies []*http.Cookie) (Session, error) {
	now := s.now()
	return s.Update(id, func(session *Session) {
		session.User = &user
		session.Cookies = mergeCookies(session.Cookies, cookies, now)
		session.Dashboard = dashboard.Board{}
	})
}

// ReplaceUser swaps the signed-in user's record and leaves everything else,
// an unsaved dashboard draft included, as it was.
func (s *Store) ReplaceUser(id string, user models.User) (Session, error) {
	return s.Update(id, func(session *Session) {
		session.User = &user
	})
}

func (s *Store) ClearUser(id string) (Session, error) {
	return s.Update(id, func(session *Session) {
		session.User = nil
		session.Cookies = nil
		session.Dashboard = dashboard.Board{}
	})
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

// Sweep drops expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) snapshot() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Session, 0, len(s.sessions))
	now := s.now()
	for _, session := range s.sessions {
		if !s.expired(session, now) {
			result = append(result, session.clone())
		}
	}
	return result
}

func (s *Store) restore(sessions []Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range sessions {
		s.sessions[session.ID] = session.clone()
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

func (s *Store) lookup(id string) (Session, error) {
	current, found := s.sessions[id]
	if !found {
		return Session{}, ErrSessionNotFound
	}
	if s.expired(current, s.now()) {
		delete(s.sessions, id)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return Session{}, ErrSessionNotFound
	}
	return current, nil
}

func (s *Store) expired(session Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(session.UpdatedAt) > s.ttl
}

func (s *Store) expiresAt(session Session) time.Time {
	return session.UpdatedAt.Add(s.ttl)
}
