package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty DataDir is valid at config level",
			config:  Config{Backend: "sqlite", DataDir: ""},
			wantErr: nil,
		},
		{
			name: "unknown sync strategy",
			config: Config{Backend: "sqlite", SQLiteConfig: &SQLiteConfig{
				SyncStrategy: "eventually",
			}},
			wantErr: ErrSyncStrategyUnknown,
		},
		{
			name: "negative batch size",
			config: Config{Backend: "sqlite", SQLiteConfig: &SQLiteConfig{
				SyncStrategy: SyncBatch,
				BatchSize:    -1,
			}},
			wantErr: ErrBatchSizeInvalid,
		},
		{
			name: "negative batch interval",
			config: Config{Backend: "sqlite", SQLiteConfig: &SQLiteConfig{
				SyncStrategy:  SyncBatch,
				BatchInterval: -3,
			}},
			wantErr: ErrBatchIntervalInvalid,
		},
		{
			name: "on_close strategy",
			config: Config{Backend: "sqlite", SQLiteConfig: &SQLiteConfig{
				SyncStrategy: SyncOnClose,
			}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSQLiteConfigDefaults(t *testing.T) {
	var nilCfg *SQLiteConfig
	assert.Equal(t, SyncImmediate, nilCfg.GetSyncStrategy())
	assert.Equal(t, DefaultBatchSize, nilCfg.GetBatchSize())
	assert.Equal(t, DefaultBatchInterval, nilCfg.GetBatchInterval())

	cfg := &SQLiteConfig{SyncStrategy: SyncBatch, BatchSize: 3, BatchInterval: 9}
	assert.Equal(t, SyncBatch, cfg.GetSyncStrategy())
	assert.Equal(t, 3, cfg.GetBatchSize())
	assert.Equal(t, 9, cfg.GetBatchInterval())
}
