package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/031wnstjd/appkit/pkg/observability/logger"
)

// Config holds configuration for a Registry
type Config struct {
	// Dir is the directory holding database files. Empty means local
	// storage is unavailable in this environment.
	Dir         string
	FileMode    os.FileMode
	OpenTimeout time.Duration
}

// connKey identifies one cached connection. storeName intentionally does not
// participate: all partitions of a database share the same connection.
type connKey struct {
	database string
	version  int
}

type openCall struct {
	done chan struct{}
	conn *Connection
	err  error
}

// Registry is a process-wide cache of open database connections. Callers
// requesting the same (databaseName, version) pair share a single connection;
// concurrent opens of the same pair collapse into one underlying open.
// Entries are added lazily and never evicted or replaced; a version bump
// creates a new entry and leaves the old one cached.
type Registry struct {
	config Config
	logger logger.Logger

	mu      sync.Mutex
	conns   map[connKey]*Connection
	opening map[connKey]*openCall
}

// NewRegistry creates a connection registry. Each test can create its own
// registry with a private directory for isolation; long-running processes
// create one at startup and never tear it down.
func NewRegistry(cfg Config, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0o600
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 5 * time.Second
	}

	// Cached connections are never invalidated: bumping a version leaves the
	// previous connection open until process exit.
	log.Debug("local store registry created", "dir", cfg.Dir)

	return &Registry{
		config:  cfg,
		logger:  log,
		conns:   make(map[connKey]*Connection),
		opening: make(map[connKey]*openCall),
	}
}

// Open returns the cached connection for (databaseName, version), opening the
// database and creating the named partition when no connection exists yet.
// Concurrent calls for the same pair share one underlying open. Returns
// ErrUnavailable when no storage directory is configured or usable.
func (r *Registry) Open(ctx context.Context, databaseName, storeName string, version int) (*Connection, error) {
	if databaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if storeName == "" {
		return nil, fmt.Errorf("store name is required")
	}
	if version < 1 {
		return nil, fmt.Errorf("version must be >= 1, got %d", version)
	}
	if r.config.Dir == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := connKey{database: databaseName, version: version}

	r.mu.Lock()
	if conn, ok := r.conns[key]; ok {
		r.mu.Unlock()
		// The partition may not exist yet when a second store name is
		// declared against an already-open database.
		if err := conn.ensurePartition(storeName); err != nil {
			return nil, newWriteError(conn, storeName, "", err)
		}
		return conn, nil
	}
	if call, ok := r.opening[key]; ok {
		r.mu.Unlock()
		select {
		case <-call.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if call.err != nil {
			return nil, call.err
		}
		if err := call.conn.ensurePartition(storeName); err != nil {
			return nil, newWriteError(call.conn, storeName, "", err)
		}
		return call.conn, nil
	}

	call := &openCall{done: make(chan struct{})}
	r.opening[key] = call
	r.mu.Unlock()

	conn, err := r.open(databaseName, storeName, version)

	r.mu.Lock()
	delete(r.opening, key)
	if err == nil {
		r.conns[key] = conn
	}
	r.mu.Unlock()

	call.conn = conn
	call.err = err
	close(call.done)

	if err != nil {
		// Failed opens are not cached so a later call may retry.
		return nil, err
	}
	return conn, nil
}

// open establishes the underlying database connection and runs the one-time
// upgrade step that creates the declared partition.
func (r *Registry) open(databaseName, storeName string, version int) (*Connection, error) {
	if err := os.MkdirAll(r.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	path := filepath.Join(r.config.Dir, fmt.Sprintf("%s.v%d.db", databaseName, version))
	db, err := bolt.Open(path, r.config.FileMode, &bolt.Options{Timeout: r.config.OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	conn := &Connection{
		databaseName: databaseName,
		version:      version,
		path:         path,
		db:           db,
		logger:       r.logger,
	}

	if err := conn.ensurePartition(storeName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create partition %s: %w", storeName, err)
	}

	r.logger.Info("local store connection established",
		"database", databaseName,
		"version", version,
		"path", path,
	)

	return conn, nil
}

// HealthCheck verifies the storage facility is usable by opening a probe
// database and performing a write/read/delete round trip.
func (r *Registry) HealthCheck(ctx context.Context) error {
	conn, err := r.Open(ctx, "healthcheck", "probe", 1)
	if err != nil {
		return fmt.Errorf("local store health check failed: %w", err)
	}

	if err := conn.Put(ctx, "probe", []byte("ok"), "probe"); err != nil {
		return fmt.Errorf("local store health check failed: %w", err)
	}
	value, err := conn.Get(ctx, "probe", "probe")
	if err != nil {
		return fmt.Errorf("local store health check failed: %w", err)
	}
	if string(value) != "ok" {
		return fmt.Errorf("local store health check failed: probe value mismatch")
	}
	if err := conn.Delete(ctx, "probe", "probe"); err != nil {
		return fmt.Errorf("local store health check failed: %w", err)
	}
	return nil
}

// Close closes every cached connection. The normal runtime never calls this
// (connections live for the process); it exists for tests and controlled
// shutdown.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for key, conn := range r.conns {
		if err := conn.close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s v%d: %w", key.database, key.version, err)
		}
		delete(r.conns, key)
	}
	return firstErr
}
