package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Timer.TotalSeconds)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero total", func(c *Config) { c.Timer.TotalSeconds = 0 }, ErrInvalidTotal},
		{"negative total", func(c *Config) { c.Timer.TotalSeconds = -1 }, ErrInvalidTotal},
		{"zero interval", func(c *Config) { c.Timer.TickInterval = 0 }, ErrInvalidInterval},
		{"zero width", func(c *Config) { c.App.WindowWidth = 0 }, ErrInvalidWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestNewManagerWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), m.GetConfig())
	assert.FileExists(t, path)

	again, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), again.GetConfig())
}

func TestNewManagerKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  total_seconds: 20\n"), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg := m.GetConfig()
	assert.Equal(t, 20, cfg.Timer.TotalSeconds)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, "handwash.db", cfg.Database.Path)
}

func TestNewManagerParsesDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  total_seconds: 3\n  tick_interval: 250ms\n"), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, m.GetConfig().Timer.TickInterval)
}

func TestNewManagerRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  total_seconds: 0\n"), 0644))

	_, err := NewManager(path)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	require.NoError(t, os.WriteFile(path, []byte("timer: [\n"), 0644))
	_, err = NewManager(path)
	assert.Error(t, err)
}

func TestWatchReloadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got *Config
	require.NoError(t, m.Watch(ctx, zap.NewNop(), func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		got = c
	}))

	// 无效的内容被忽略
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  total_seconds: -2\n"), 0644))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, 5, m.GetConfig().Timer.TotalSeconds)

	require.NoError(t, os.WriteFile(path, []byte("timer:\n  total_seconds: 12\n"), 0644))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Timer.TotalSeconds == 12
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, 12, m.GetConfig().Timer.TotalSeconds)

	cancel()
}
