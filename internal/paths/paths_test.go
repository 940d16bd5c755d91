package paths

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHome points platform lookups at dir for the duration of the test.
func fakeHome(t *testing.T, dir string) {
	t.Helper()
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return dir, nil }
	platformDir.userConfigDir = func() (string, error) {
		return filepath.Join(dir, "Library", "Application Support"), nil
	}
	t.Cleanup(func() { platformDir = saved })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	fakeHome(t, "/home/ana")

	tests := []struct {
		name       string
		configHome string
		dataHome   string
		wantConfig string
		wantData   string
	}{
		{
			name:       "XDG variables set",
			configHome: "/tmp/xdg-config",
			dataHome:   "/tmp/xdg-data",
			wantConfig: "/tmp/xdg-config/tweetbox",
			wantData:   "/tmp/xdg-data/tweetbox",
		},
		{
			name:       "falls back to home",
			wantConfig: "/home/ana/.config/tweetbox",
			wantData:   "/home/ana/.local/share/tweetbox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.configHome)
			t.Setenv("XDG_DATA_HOME", tt.dataHome)

			got, err := DefaultConfigDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, got)

			got, err = DefaultDataDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, got)
		})
	}
}

func TestDefaultDirs_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}
	fakeHome(t, "/Users/ana")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/ana/Library/Application Support/tweetbox", got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/ana/Library/Application Support/tweetbox/data", got)
}

func TestDefaultConfigDir_HomeUnavailable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { platformDir = saved })
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	fakeHome(t, "/home/ana")

	tests := []struct {
		name    string
		flag    string
		env     string
		wantSub string
	}{
		{name: "flag wins over env", flag: "/explicit/config", env: "/env/config", wantSub: "/explicit/config"},
		{name: "env wins when flag empty", env: "/env/config", wantSub: "/env/config"},
		{name: "platform default", wantSub: "tweetbox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	fakeHome(t, "/home/ana")
	t.Setenv("XDG_DATA_HOME", "")

	tests := []struct {
		name        string
		flag        string
		env         string
		configValue string
		want        string
	}{
		{name: "flag wins over all", flag: "/flag/data", env: "/env/data", configValue: "/config/data", want: "/flag/data"},
		{name: "env wins over config", env: "/env/data", configValue: "/config/data", want: "/env/data"},
		{name: "config value", configValue: "/config/data", want: "/config/data"},
		{name: "config value with tilde", configValue: "~/tweets", want: "/home/ana/tweets"},
		{name: "platform default", want: "/home/ana/.local/share/tweetbox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveKeypairPath(t *testing.T) {
	fakeHome(t, "/home/ana")

	tests := []struct {
		name        string
		flag        string
		configValue string
		want        string
	}{
		{name: "flag", flag: "/keys/me.json", configValue: "/keys/other.json", want: "/keys/me.json"},
		{name: "config value", configValue: "~/.config/solana/id.json", want: "/home/ana/.config/solana/id.json"},
		{name: "default in config dir", want: "/etc/tweetbox/id.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveKeypairPath(tt.flag, tt.configValue, "/etc/tweetbox")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbs(t *testing.T) {
	fakeHome(t, "/home/ana")

	got, err := Abs("~")
	require.NoError(t, err)
	assert.Equal(t, "/home/ana", got)

	got, err = Abs("relative/path")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	// Only a leading ~/ is expanded.
	got, err = Abs("/srv/~data")
	require.NoError(t, err)
	assert.Equal(t, "/srv/~data", got)
}
