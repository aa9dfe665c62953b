package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ivanoskov/gasto_efectivo/internal/auth"
	"github.com/ivanoskov/gasto_efectivo/internal/repository"
	"github.com/ivanoskov/gasto_efectivo/internal/service"
)

// sessionEntry couples one authenticated session with the tracker built
// over that session's client. Everything reachable from the entry is
// scoped to one user; entries are never shared or reused across sign-ins.
type sessionEntry struct {
	session *auth.Session
	tracker *service.ExpenseTracker
}

// sessionRegistry holds the live sessions keyed by a server-issued opaque
// token.
type sessionRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{entries: make(map[string]*sessionEntry)}
}

func (r *sessionRegistry) add(session *auth.Session) string {
	token := uuid.New().String()
	entry := &sessionEntry{
		session: session,
		tracker: service.NewExpenseTracker(repository.NewSupabase(session.Client())),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[token] = entry
	return token
}

func (r *sessionRegistry) get(token string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[token]
}

// remove drops the entry and returns it so the caller can sign the
// session out.
func (r *sessionRegistry) remove(token string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := r.entries[token]
	delete(r.entries, token)
	return entry
}
