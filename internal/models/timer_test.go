package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		total, left int
		want        float64
	}{
		{5, 5, 0},
		{5, 4, 20},
		{5, 1, 80},
		{5, 0, 100},
		{3, 2, 100.0 / 3},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Progress(tt.total, tt.left), 1e-9, "total=%d left=%d", tt.total, tt.left)
	}
}

func TestSnapshotState(t *testing.T) {
	assert.Equal(t, StateRunning, Snapshot{Running: true}.State())
	assert.Equal(t, StateIdle, Snapshot{}.State())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "unknown", TimerState(7).String())
}
