package models

import "time"

type CountdownStats struct {
	TotalRuns    int
	TotalSeconds int64 // 以秒为单位
	TodayRuns    int
	TodaySeconds int64
}

// AverageSeconds 平均每次倒计时的时长
func (s CountdownStats) AverageSeconds() float64 {
	if s.TotalRuns == 0 {
		return 0
	}
	return float64(s.TotalSeconds) / float64(s.TotalRuns)
}

type CountdownRecord struct {
	ID           string
	Preset       string
	TotalSeconds int
	StartedAt    time.Time
	CompletedAt  time.Time
}
