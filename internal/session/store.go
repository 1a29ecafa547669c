// Package session keeps one UI state container per browser. The container
// lives in an in-memory database and is lost when the process exits.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pydata-academy/academy/internal/db"
	"github.com/pydata-academy/academy/internal/uistate"
)

// ErrSessionNotFound is returned for an unknown or pruned session id.
var ErrSessionNotFound = errors.New("session not found")

// Store provides access to browser sessions.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Create inserts a session with default state and returns its id.
func (s *Store) Create(ctx context.Context) (string, uistate.Session, error) {
	id := uuid.NewString()
	state := uistate.DefaultSession()
	ts := s.now().UnixNano()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ui_sessions (id, theme, active_panel, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, string(state.Theme), string(state.ActivePanel), ts, ts)
	if err != nil {
		return "", uistate.Session{}, fmt.Errorf("inserting session: %w", err)
	}
	return id, state, nil
}

// Get returns the state of the session with the given id.
func (s *Store) Get(ctx context.Context, id string) (uistate.Session, error) {
	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id string) (uistate.Session, error) {
	var theme, panel string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme, active_panel FROM ui_sessions WHERE id = ?`, id,
	).Scan(&theme, &panel)
	if errors.Is(err, sql.ErrNoRows) {
		return uistate.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return uistate.Session{}, fmt.Errorf("querying session: %w", err)
	}
	return uistate.Session{Theme: uistate.Theme(theme), ActivePanel: uistate.Panel(panel)}, nil
}

// Update applies fn to the session state and stores the result. Updates are
// serialized, so concurrent transitions on one session are never lost.
func (s *Store) Update(ctx context.Context, id string, fn func(*uistate.Session)) (uistate.Session, error) {
	s.db.Lock()
	defer s.db.Unlock()

	state, err := s.get(ctx, id)
	if err != nil {
		return uistate.Session{}, err
	}
	fn(&state)

	res, err := s.db.ExecContext(ctx, `
		UPDATE ui_sessions SET theme = ?, active_panel = ?, updated_at = ?
		WHERE id = ?`,
		string(state.Theme), string(state.ActivePanel), s.now().UnixNano(), id)
	if err != nil {
		return uistate.Session{}, fmt.Errorf("updating session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return uistate.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return state, nil
}

// Touch marks the session as used without changing its state.
func (s *Store) Touch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ui_sessions SET updated_at = ? WHERE id = ?`, s.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Restore re-inserts a pruned session under its old id with the given state.
// A session that still exists is left untouched.
func (s *Store) Restore(ctx context.Context, id string, state uistate.Session) error {
	ts := s.now().UnixNano()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ui_sessions (id, theme, active_panel, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		id, string(state.Theme), string(state.ActivePanel), ts, ts)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	return nil
}

// Prune removes sessions not used for longer than idle and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, idle time.Duration) (int64, error) {
	cutoff := s.now().Add(-idle).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM ui_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of live sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ui_sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// RunPruner prunes idle sessions every interval until ctx is done.
func (s *Store) RunPruner(ctx context.Context, interval, idle time.Duration, logf func(format string, args ...any)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Prune(ctx, idle)
			if err != nil {
				logf("session: prune: %v", err)
				continue
			}
			if n > 0 {
				logf("session: pruned %d idle sessions", n)
			}
		}
	}
}
