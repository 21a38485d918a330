package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"HandWash/internal/models"
	"HandWash/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, dbPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timer:\n  total_seconds: 5\ndatabase:\n  path: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStatsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "handwash.db")
	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, db.SaveRecord(&models.CountdownRecord{Preset: "Hand wash", TotalSeconds: 5, StartedAt: now, CompletedAt: now}))
	require.NoError(t, db.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"stats", "--config", writeConfig(t, dbPath), "--range", "all"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "All Time")
	assert.Contains(t, out.String(), "Countdowns: 1")
}

func TestStatsCommandRejectsUnknownRange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "handwash.db")
	rootCmd.SetArgs([]string{"stats", "--config", writeConfig(t, dbPath), "--range", "year"})
	assert.Error(t, rootCmd.Execute())
}

func TestLoadConfigSecondsOverride(t *testing.T) {
	configPath = writeConfig(t, filepath.Join(t.TempDir(), "handwash.db"))
	seconds = 30
	t.Cleanup(func() {
		configPath = ""
		seconds = 0
	})

	manager, cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Timer.TotalSeconds)
	// 覆盖不写回配置文件
	assert.Equal(t, 5, manager.GetConfig().Timer.TotalSeconds)

	seconds = -1
	_, _, err = loadConfig()
	assert.Error(t, err)
}

type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestExecuteSyncsLoggerOnError(t *testing.T) {
	sink := &syncCounter{}
	orig := newLogger
	newLogger = func(bool) (*zap.Logger, error) {
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(enc, sink, zapcore.DebugLevel)), nil
	}
	t.Cleanup(func() {
		newLogger = orig
		logger = nil
	})

	dbPath := filepath.Join(t.TempDir(), "handwash.db")
	err := execute([]string{"stats", "--config", writeConfig(t, dbPath), "--range", "year"})
	assert.Error(t, err)
	assert.Equal(t, 1, sink.syncs)
}
