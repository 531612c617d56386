package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sync"
)

// Querier is the subset of *sql.DB and *sql.Conn used by the repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scope binds a single pooled connection to one request.
// The connection is checked out on first use and returned by Release.
type Scope struct {
	pool *sql.DB

	mu       sync.Mutex
	conn     *sql.Conn
	released bool
}

type scopeKey struct{}

var errScopeReleased = errors.New("db scope already released")

// NewScope returns a scope that borrows from pool.
func NewScope(pool *sql.DB) *Scope {
	return &Scope{pool: pool}
}

// Conn returns the scope's connection, checking one out of the pool if
// this is the first call.
func (s *Scope) Conn(ctx context.Context) (*sql.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, errScopeReleased
	}
	if s.conn != nil {
		return s.conn, nil
	}

	conn, err := s.pool.Conn(ctx)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// Acquired reports whether a connection has been checked out.
func (s *Scope) Acquired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Release returns the connection to the pool. Calling it more than once,
// or on a scope that never acquired a connection, is a no-op.
func (s *Scope) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.released = true
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// WithScope stores scope in ctx.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the request scope, if any.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok && scope != nil
}

// QuerierFrom returns the request-scoped connection when ctx carries a
// Scope, and the pool otherwise.
func QuerierFrom(ctx context.Context, pool *sql.DB) (Querier, error) {
	if scope, ok := ScopeFromContext(ctx); ok {
		return scope.Conn(ctx)
	}
	return pool, nil
}

// Middleware gives every request its own Scope and releases it when the
// handler returns or panics.
func Middleware(pool *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := NewScope(pool)
			defer func() {
				if err := scope.Release(); err != nil {
					slog.Warn("release db connection", "error", err, "path", r.URL.Path)
				}
			}()
			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}
