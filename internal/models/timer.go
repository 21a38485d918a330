package models

type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
)

func (s TimerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Snapshot 是倒计时在某一时刻的只读视图
type Snapshot struct {
	TotalSeconds int
	SecondsLeft  int
	Running      bool
	Progress     float64 // 0 到 100
}

func (s Snapshot) State() TimerState {
	if s.Running {
		return StateRunning
	}
	return StateIdle
}

// Progress 计算已经过的百分比
func Progress(total, left int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(100*(total-left)) / float64(total)
}
