package models

import "time"

type TimerPreset struct {
	ID           int64
	Name         string
	TotalSeconds int
	CreatedAt    time.Time
}
