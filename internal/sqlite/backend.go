// Package sqlite implements the SQLite slot store for tweetbox.
// SQLite is the query engine; slots.jsonl and ledger.jsonl in the data
// directory are the source of truth and are reloaded on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// dbFileName is the SQLite database file inside DataDir.
const dbFileName = "slots.db"

// Backend implements types.Store on SQLite with JSONL persistence.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
	now      func() time.Time

	// Sync strategy state
	syncStrategy  string         // effective sync strategy: immediate, on_close, batch
	batchSize     int            // number of writes before batch flush
	batchInterval time.Duration  // time between batch flushes
	pendingWrites []pendingWrite // queue of writes pending JSONL persist
	batchTimer    *time.Timer    // timer for interval-based batch flush
	batchMu       sync.Mutex     // protects pendingWrites and batchTimer
}

// pendingWrite represents a deferred JSONL write operation.
// Used by on_close and batch sync strategies.
type pendingWrite struct {
	fileName  string       // JSONL file to rewrite
	operation string       // allocate, write, reclaim
	persist   func() error // function to execute the JSONL write
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		b.logger = l
	}
}

// WithClock overrides the time source used for ledger and slot timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema, and
// loads the JSONL files into it.
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
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	config.DataDir = dataDir

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// A single connection keeps every transaction serialized.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config

	b.syncStrategy = config.SQLiteConfig.GetSyncStrategy()
	b.batchSize = config.SQLiteConfig.GetBatchSize()
	b.batchInterval = time.Duration(config.SQLiteConfig.GetBatchInterval()) * time.Second
	b.pendingWrites = nil

	b.attached = true

	if b.syncStrategy == types.SyncBatch && b.batchInterval > 0 {
		b.startBatchTimer()
	}

	b.logger.Info("slot store attached",
		zap.String("data_dir", dataDir),
		zap.String("sync_strategy", b.syncStrategy))
	return nil
}

// Detach releases all resources held by the backend. For on_close and batch
// sync strategies, pending writes are flushed before closing. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.stopBatchTimer()

	if err := b.flushPendingWritesLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("slot store detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// createSchema executes all table and index DDL.
func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// generateUUID generates a new UUID v7 for ledger entry IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// timestamp formats the backend clock for storage.
func (b *Backend) timestamp() string {
	return b.now().UTC().Format(time.RFC3339)
}

// Sync strategy methods

// commit makes the changes in tx durable in the named JSONL files. Under the
// immediate strategy the files are rewritten from tx before it commits; if a
// rewrite or the commit fails, tx is rolled back and the files are rewritten
// from the unchanged tables, so an error always means nothing changed. Other
// strategies commit first and queue the rewrite.
// The caller must hold b.mu.
func (b *Backend) commit(tx *sql.Tx, operation string, files ...string) error {
	if !b.shouldPersistImmediately() {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing %s: %w", operation, err)
		}
		for _, name := range files {
			b.queueWrite(name, operation, func() error {
				return persistJSONL(b.db, b.config.DataDir, name)
			})
		}
		return nil
	}

	for _, name := range files {
		if err := persistJSONL(tx, b.config.DataDir, name); err != nil {
			_ = tx.Rollback()
			b.restoreJSONL(operation, files)
			return fmt.Errorf("persisting %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		b.restoreJSONL(operation, files)
		return fmt.Errorf("committing %s: %w", operation, err)
	}
	return nil
}

// restoreJSONL rewrites files from the tables after a rolled-back change.
func (b *Backend) restoreJSONL(operation string, files []string) {
	for _, name := range files {
		if err := persistJSONL(b.db, b.config.DataDir, name); err != nil {
			b.logger.Error("restoring JSONL after failed change",
				zap.String("file", name),
				zap.String("operation", operation),
				zap.Error(err))
		}
	}
}

// shouldPersistImmediately returns true if JSONL writes should happen immediately.
func (b *Backend) shouldPersistImmediately() bool {
	return b.syncStrategy == types.SyncImmediate || b.syncStrategy == ""
}

// queueWrite adds a write operation to the pending queue. For the batch
// strategy the queue is flushed once it reaches batchSize.
// The caller must hold b.mu.
func (b *Backend) queueWrite(fileName, operation string, fn func() error) {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	b.pendingWrites = append(b.pendingWrites, pendingWrite{
		fileName:  fileName,
		operation: operation,
		persist:   fn,
	})

	if b.syncStrategy == types.SyncBatch && b.batchSize > 0 && len(b.pendingWrites) >= b.batchSize {
		if err := b.flushPendingWritesBatchLocked(); err != nil {
			b.logger.Warn("batch flush failed", zap.Error(err))
		}
	}
}

// flushPendingWritesLocked flushes all pending writes to JSONL files.
// The caller must hold b.mu write lock.
func (b *Backend) flushPendingWritesLocked() error {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	return b.flushPendingWritesBatchLocked()
}

// flushPendingWritesBatchLocked executes all pending writes. Every queued
// write rewrites a whole file from the database, so only the last write per
// file needs to run.
// The caller must hold b.batchMu lock.
func (b *Backend) flushPendingWritesBatchLocked() error {
	if len(b.pendingWrites) == 0 {
		return nil
	}

	last := make(map[string]int, 2)
	for i, pw := range b.pendingWrites {
		last[pw.fileName] = i
	}
	for i, pw := range b.pendingWrites {
		if last[pw.fileName] != i {
			continue
		}
		if err := pw.persist(); err != nil {
			return fmt.Errorf("flush %s %s: %w", pw.fileName, pw.operation, err)
		}
	}

	b.logger.Debug("flushed pending writes", zap.Int("count", len(b.pendingWrites)))
	b.pendingWrites = nil
	return nil
}

// startBatchTimer starts the batch interval timer for periodic flushes.
func (b *Backend) startBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		return // already running
	}

	b.batchTimer = time.AfterFunc(b.batchInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.attached {
			return
		}

		if err := b.flushPendingWritesLocked(); err != nil {
			b.logger.Warn("interval flush failed", zap.Error(err))
		}

		b.batchMu.Lock()
		if b.batchTimer != nil && b.attached {
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
