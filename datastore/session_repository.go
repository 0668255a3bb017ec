package datastore

import (
	"sort"
	"sync"
	"time"

	"github.com/colorix/api/models"
	"github.com/google/uuid"
)

type SessionRepository interface {
	Create() (models.Session, error)
	Get(id string) (models.Session, error)
	Touch(id string) (models.Session, error)
	Update(id string, fn func(*models.Session) error) (models.Session, error)
	Delete(id string) error
	DeleteIdleSince(cutoff time.Time) ([]string, error)
	Count() int
}

// SessionMemory keeps sessions in a map. Every mutation goes through one
// lock, so concurrent requests for the same session are applied one at a
// time and never observe a half-applied update.
type SessionMemory struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewSessionMemory() *SessionMemory {
	return &SessionMemory{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

// Create stores a new session with the default mixer slots.
func (sm *SessionMemory) Create() (models.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := models.NewSession(uuid.New().String(), sm.now())
	sm.sessions[session.ID] = session
	return session, nil
}

// Get returns a copy of the session.
func (sm *SessionMemory) Get(id string) (models.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return models.Session{}, NotFoundError{ID: id}
	}
	return session, nil
}

// Touch marks the session as used now and returns it.
func (sm *SessionMemory) Touch(id string) (models.Session, error) {
	return sm.Update(id, func(*models.Session) error { return nil })
}

// Update applies fn to a copy of the session and stores the copy only if fn
// succeeds.
func (sm *SessionMemory) Update(id string, fn func(*models.Session) error) (models.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return models.Session{}, NotFoundError{ID: id}
	}

	if err := fn(&session); err != nil {
		return sm.sessions[id], err
	}

	session.LastSeen = sm.now()
	sm.sessions[id] = session
	return session, nil
}

func (sm *SessionMemory) Delete(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return NotFoundError{ID: id}
	}
	delete(sm.sessions, id)
	return nil
}

// DeleteIdleSince removes every session not seen since cutoff and returns
// their ids in sorted order.
func (sm *SessionMemory) DeleteIdleSince(cutoff time.Time) ([]string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var removed []string
	for id, session := range sm.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(sm.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

func (sm *SessionMemory) Count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}
