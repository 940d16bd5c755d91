// Package paths resolves where tweetbox keeps its configuration, its slot
// store, and the caller's keypair.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// appName is the directory name used under the platform config and data roots.
const appName = "tweetbox"

// File names inside the config directory.
const (
	ConfigFileName  = "config.yaml"
	KeypairFileName = "id.json"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TWEETBOX_CONFIG_DIR"
	EnvDataDir   = "TWEETBOX_DATA_DIR"
)

// platformDir holds platform lookups so tests can replace them.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/tweetbox (fallback ~/.config/tweetbox)
// macOS:   ~/Library/Application Support/tweetbox
// Windows: %APPDATA%/tweetbox
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// DefaultDataDir returns the platform data directory. On macOS and Windows
// it is a "data" directory under the config directory so the two never
// collide.
//
// Linux:   $XDG_DATA_HOME/tweetbox (fallback ~/.local/share/tweetbox)
// macOS:   ~/Library/Application Support/tweetbox/data
// Windows: %APPDATA%/tweetbox/data
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "data"), nil
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appName), nil
}

// ResolveConfigDir returns the configuration directory: flag, then
// TWEETBOX_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, os.Getenv(EnvConfigDir), DefaultConfigDir)
}

// ResolveDataDir returns the slot store directory: flag, then
// TWEETBOX_DATA_DIR, then the data_dir value from config.yaml, then
// DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(flag, os.Getenv(EnvDataDir), func() (string, error) {
		if configValue != "" {
			return Abs(configValue)
		}
		return DefaultDataDir()
	})
}

// ResolveKeypairPath returns the keypair file: flag, then the keypair value
// from config.yaml, then id.json in configDir.
func ResolveKeypairPath(flag, configValue, configDir string) (string, error) {
	return resolve(flag, configValue, func() (string, error) {
		return filepath.Join(configDir, KeypairFileName), nil
	})
}

func resolve(first, second string, fallback func() (string, error)) (string, error) {
	if first != "" {
		return Abs(first)
	}
	if second != "" {
		return Abs(second)
	}
	return fallback()
}

// Abs expands a leading ~ to the home directory and makes p absolute.
func Abs(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return filepath.Abs(p)
}
