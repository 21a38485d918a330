package storage

import (
	"path/filepath"
	"testing"
	"time"

	"HandWash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "handwash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPresets(t *testing.T) {
	db := openTestDB(t)

	first := &models.TimerPreset{Name: "Short", TotalSeconds: 5}
	require.NoError(t, db.SavePreset(first))
	assert.NotZero(t, first.ID)
	require.NoError(t, db.SavePreset(&models.TimerPreset{Name: "WHO", TotalSeconds: 40}))

	// 同名预设只更新时长
	updated := &models.TimerPreset{Name: "Short", TotalSeconds: 10}
	require.NoError(t, db.SavePreset(updated))
	assert.Equal(t, first.ID, updated.ID)

	presets, err := db.ListPresets()
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "Short", presets[0].Name)
	assert.Equal(t, 10, presets[0].TotalSeconds)
	assert.Equal(t, "WHO", presets[1].Name)

	require.NoError(t, db.DeletePreset("Short"))
	assert.ErrorIs(t, db.DeletePreset("Short"), ErrPresetNotFound)

	presets, err = db.ListPresets()
	require.NoError(t, err)
	require.Len(t, presets, 1)
}

func TestRecordsAndStats(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	old := now.AddDate(0, 0, -10)
	records := []*models.CountdownRecord{
		{Preset: "Default", TotalSeconds: 5, StartedAt: now.Add(-5 * time.Second), CompletedAt: now},
		{Preset: "Default", TotalSeconds: 5, StartedAt: now.Add(-time.Second), CompletedAt: now},
		{Preset: "WHO", TotalSeconds: 40, StartedAt: old, CompletedAt: old.Add(40 * time.Second)},
	}
	for _, r := range records {
		require.NoError(t, db.SaveRecord(r))
		assert.NotEmpty(t, r.ID)
	}
	assert.NotEqual(t, records[0].ID, records[1].ID)

	all, err := db.Stats(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalRuns)
	assert.Equal(t, int64(50), all.TotalSeconds)
	assert.Equal(t, 2, all.TodayRuns)
	assert.Equal(t, int64(10), all.TodaySeconds)
	assert.InDelta(t, 50.0/3, all.AverageSeconds(), 1e-9)

	recent, err := db.Stats(now.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 2, recent.TotalRuns)
}

func TestSaveRecordDuplicateID(t *testing.T) {
	db := openTestDB(t)

	r := &models.CountdownRecord{ID: "fixed", Preset: "Default", TotalSeconds: 5, StartedAt: time.Now(), CompletedAt: time.Now()}
	require.NoError(t, db.SaveRecord(r))
	assert.Error(t, db.SaveRecord(r))
}

func TestStatsEmpty(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.Stats(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, models.CountdownStats{}, *stats)
	assert.Zero(t, stats.AverageSeconds())
}
