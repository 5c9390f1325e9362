package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Registry keeps one loaded session per user.
type Registry struct {
	deps Deps
	opts []Option

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(deps Deps, opts ...Option) *Registry {
	return &Registry{
		deps:     deps,
		opts:     opts,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Get returns the user's session, loading it on first use.
func (r *Registry) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	r.mu.Unlock()

	if ok {
		return s, nil
	}

	fresh := New(userID, r.deps, r.opts...)
	if err := fresh.Load(ctx); err != nil {
		fresh.Close()
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		fresh.Close()
		return s, nil
	}

	r.sessions[userID] = fresh

	return fresh, nil
}

// Drop forgets a session, e.g. on sign out.
func (r *Registry) Drop(userID uuid.UUID) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
