// Package sqlite implements the SQLite storage backend for loantrack.
//
// SQLite is the query engine; one JSONL file per collection in DataDir is the
// source of truth. The database is rebuilt from the JSONL files on every
// Attach and the files are rewritten according to the sync strategy.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// dbFileName is the SQLite file created inside DataDir.
const dbFileName = "loantrack.db"

// Backend implements types.Store using SQLite as the query engine and JSONL
// files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]*table
	log      *zap.Logger

	// Sync strategy state.
	syncStrategy  string
	batchSize     int
	batchInterval time.Duration
	dirty         map[string]struct{} // collections with unpersisted writes
	pending       int                 // writes since the last flush
	batchTimer    *time.Timer
	batchMu       sync.Mutex // protects dirty, pending and batchTimer
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for load, flush and seed events.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]*table),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns the Table for the named collection.
// Returns ErrStoreDetached if the backend is not attached and
// ErrTableNotFound if the name is not a standard collection.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrTableNotFound, name)
	}
	return t, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite database and
// loads every collection's JSONL file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
		config.DataDir = dataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	counts, err := loadAllJSONL(db, dataDir, b.log)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.SQLiteConfig.GetSyncStrategy()
	b.batchSize = config.SQLiteConfig.GetBatchSize()
	b.batchInterval = time.Duration(config.SQLiteConfig.GetBatchInterval()) * time.Second
	b.dirty = make(map[string]struct{})
	b.pending = 0

	for _, name := range types.StandardTableNames {
		b.tables[name] = &table{name: name, backend: b}
	}
	b.attached = true

	if b.syncStrategy == types.SyncBatch && b.batchInterval > 0 {
		b.startBatchTimer()
	}

	b.log.Debug("store attached",
		zap.String("data_dir", dataDir),
		zap.String("sync_strategy", b.syncStrategy),
		zap.Any("records", counts),
	)
	return nil
}

// Detach flushes pending writes and releases the database. After Detach all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.stopBatchTimer()

	if err := b.flushLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]*table)
	b.log.Debug("store detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// Flush writes every collection with unpersisted changes to its JSONL file.
// It is a no-op under the immediate strategy.
func (b *Backend) Flush() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return b.flushLocked()
}

// recordWrite persists collection according to the sync strategy. The caller
// must hold b.mu.
func (b *Backend) recordWrite(collection string) error {
	if b.syncStrategy == types.SyncImmediate || b.syncStrategy == "" {
		return persistCollection(b.db, b.config.DataDir, collection)
	}

	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	b.dirty[collection] = struct{}{}
	b.pending++
	if b.syncStrategy == types.SyncBatch && b.batchSize > 0 && b.pending >= b.batchSize {
		return b.flushDirtyLocked()
	}
	return nil
}

// flushLocked flushes dirty collections. The caller must hold b.mu.
func (b *Backend) flushLocked() error {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	return b.flushDirtyLocked()
}

// flushDirtyLocked rewrites each dirty collection's JSONL file. Collections
// that fail stay dirty so the next flush retries them. The caller must hold
// b.batchMu.
func (b *Backend) flushDirtyLocked() error {
	if len(b.dirty) == 0 {
		return nil
	}
	var firstErr error
	flushed := 0
	for _, name := range types.StandardTableNames {
		if _, ok := b.dirty[name]; !ok {
			continue
		}
		if err := persistCollection(b.db, b.config.DataDir, name); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("flush %s: %w", name, err)
			}
			continue
		}
		delete(b.dirty, name)
		flushed++
	}
	if firstErr == nil {
		b.pending = 0
	}
	b.log.Debug("flushed collections", zap.Int("count", flushed), zap.Error(firstErr))
	return firstErr
}

// startBatchTimer starts the batch interval timer for periodic flushes.
func (b *Backend) startBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		return
	}

	b.batchTimer = time.AfterFunc(b.batchInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.attached {
			return
		}
		if err := b.flushLocked(); err != nil {
			b.log.Warn("batch flush failed", zap.Error(err))
		}

		b.batchMu.Lock()
		if b.batchTimer != nil {
			b.batchTimer.Reset(b.batchInterval)
		}
		b.batchMu.Unlock()
	})
}

// stopBatchTimer stops the batch interval timer if running.
func (b *Backend) stopBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		b.batchTimer.Stop()
		b.batchTimer = nil
	}
}
