package types

import "errors"

// Config holds backend selection and parameters for SlotStore attachment.
type Config struct {
	Backend      string        `json:"backend" yaml:"backend"`
	DataDir      string        `json:"data_dir" yaml:"data_dir"`
	SQLiteConfig *SQLiteConfig `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
}

// SQLiteConfig tunes when the SQLite backend mirrors writes to its JSONL
// files. A nil *SQLiteConfig yields the defaults.
type SQLiteConfig struct {
	SyncStrategy  string `json:"sync_strategy" yaml:"sync_strategy"`
	BatchSize     int    `json:"batch_size" yaml:"batch_size"`
	BatchInterval int    `json:"batch_interval" yaml:"batch_interval"` // seconds
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies for the SQLite backend.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
	SyncBatch     = "batch"
)

// Defaults applied when SQLiteConfig fields are unset.
const (
	DefaultBatchSize     = 10
	DefaultBatchInterval = 5
)

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must be positive")
	ErrBatchIntervalInvalid = errors.New("batch interval must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownSyncStrategies = map[string]bool{
	SyncImmediate: true,
	SyncOnClose:   true,
	SyncBatch:     true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.SQLiteConfig != nil {
		return c.SQLiteConfig.Validate()
	}
	return nil
}

// Validate checks the sync strategy and, for the batch strategy, the batch
// parameters. Zero values mean "use the default" and are accepted.
func (s *SQLiteConfig) Validate() error {
	if s.SyncStrategy != "" && !knownSyncStrategies[s.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	if s.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if s.BatchInterval < 0 {
		return ErrBatchIntervalInvalid
	}
	return nil
}

// GetSyncStrategy returns the configured strategy or SyncImmediate.
func (s *SQLiteConfig) GetSyncStrategy() string {
	if s == nil || s.SyncStrategy == "" {
		return SyncImmediate
	}
	return s.SyncStrategy
}

// GetBatchSize returns the configured batch size or DefaultBatchSize.
func (s *SQLiteConfig) GetBatchSize() int {
	if s == nil || s.BatchSize == 0 {
		return DefaultBatchSize
	}
	return s.BatchSize
}

// GetBatchInterval returns the configured batch interval in seconds or
// DefaultBatchInterval.
func (s *SQLiteConfig) GetBatchInterval() int {
	if s == nil || s.BatchInterval == 0 {
		return DefaultBatchInterval
	}
	return s.BatchInterval
}
