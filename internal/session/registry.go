package session

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nmoreaux/sqlab/internal/database"
	"github.com/nmoreaux/sqlab/internal/database/postgres"
	"github.com/nmoreaux/sqlab/internal/database/sqlite"
)

// Session pairs a registry-issued identifier with an open database
// handle.
type Session struct {
	ID     string
	Name   string
	driver database.Driver
}

// Driver returns the session's open database handle.
func (s *Session) Driver() database.Driver {
	return s.driver
}

// Registry owns the lifecycle of lab sessions and their database
// handles. The lab service only resolves handles through it; it never
// opens or closes them itself. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *zap.Logger
}

// NewRegistry creates an empty session registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		log:      log,
	}
}

// OpenSQLite opens an embedded SQLite database as a new session and
// returns it. Pass ":memory:" for a scratch database.
func (r *Registry) OpenSQLite(ctx context.Context, path string) (*Session, error) {
	drv, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite session: %w", err)
	}
	return r.add(drv), nil
}

// AttachPostgres attaches an external PostgreSQL database as a new
// session.
func (r *Registry) AttachPostgres(ctx context.Context, dsn string) (*Session, error) {
	drv, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("attach postgres session: %w", err)
	}
	return r.add(drv), nil
}

func (r *Registry) add(drv database.Driver) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		Name:   drv.Name(),
		driver: drv,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.Info("session opened",
		zap.String("session", s.ID),
		zap.String("database", s.Name),
	)
	return s
}

// Resolve returns the open database handle for a session id.
func (r *Registry) Resolve(id string) (database.Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s.driver, true
}

// Seed runs a SQL script against a session's database. Used to load a
// lab dataset into a fresh session.
func (r *Registry) Seed(ctx context.Context, id, script string) error {
	drv, ok := r.Resolve(id)
	if !ok {
		return fmt.Errorf("seed: no such session %q", id)
	}
	return drv.Exec(ctx, script)
}

// SeedFile loads a SQL script from disk and runs it against a session.
func (r *Registry) SeedFile(ctx context.Context, id, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	return r.Seed(ctx, id, string(script))
}

// Close closes one session and removes it from the registry.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	r.log.Info("session closed", zap.String("session", id))
	return s.driver.Close()
}

// CloseAll closes every open session. Called on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for id, s := range sessions {
		if err := s.driver.Close(); err != nil {
			r.log.Warn("closing session",
				zap.String("session", id),
				zap.Error(err),
			)
		}
	}
}
