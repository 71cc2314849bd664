package checkout

import (
	"context"
	"time"

	"circles-backend/internal/model"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

// Registry tracks open checkout sessions by id.
type Registry struct {
	sessions *xsync.MapOf[string, *Session]
	gateway  Gateway
	opts     Options
}

func NewRegistry(gateway Gateway, opts Options) *Registry {
	return &Registry{
		sessions: xsync.NewMapOf[*Session](),
		gateway:  gateway,
		opts:     opts.withDefaults(),
	}
}

func (r *Registry) Open(project model.Project, userID string) *Session {
	s := NewSession(uuid.NewString(), project, userID, r.gateway, r.opts)
	r.sessions.Store(s.ID(), s)
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	return r.sessions.Load(id)
}

// Close removes and closes the session. It reports whether id was open.
func (r *Registry) Close(id string) bool {
	s, ok := r.sessions.LoadAndDelete(id)
	if ok {
		s.Close()
	}
	return ok
}

// Sweep closes sessions untouched for longer than olderThan. Sessions with a
// charge in flight are left alone.
func (r *Registry) Sweep(olderThan time.Duration) int {
	cutoff := r.opts.Now().Add(-olderThan)
	var stale []string
	r.sessions.Range(func(id string, s *Session) bool {
		updated, state := s.lastActivity()
		if state != StateSubmitting && updated.Before(cutoff) {
			stale = append(stale, id)
		}
		return true
	})

	closed := 0
	for _, id := range stale {
		if r.Close(id) {
			closed++
		}
	}
	return closed
}

func (r *Registry) Len() int {
	n := 0
	r.sessions.Range(func(string, *Session) bool {
		n++
		return true
	})
	return n
}

// closeAllGrace bounds how long CloseAll waits for charges that settle
// after cancellation to be recorded.
const closeAllGrace = 5 * time.Second

// CloseAll closes every session, e.g. on shutdown, and waits briefly for
// in-flight charges to finish.
func (r *Registry) CloseAll() {
	var closed []*Session
	r.sessions.Range(func(id string, s *Session) bool {
		if r.Close(id) {
			closed = append(closed, s)
		}
		return true
	})

	ctx, cancel := context.WithTimeout(context.Background(), closeAllGrace)
	defer cancel()
	for _, s := range closed {
		_ = s.Wait(ctx)
	}
}
