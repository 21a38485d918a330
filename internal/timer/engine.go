package timer

import (
	"errors"
	"sync"
	"time"

	"HandWash/internal/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidDuration = errors.New("timer: total seconds must be positive")
	ErrInvalidInterval = errors.New("timer: tick interval must be positive")
)

const DefaultInterval = time.Second

type Event int

const (
	EventStarted Event = iota
	EventTick
	EventCompleted
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventTick:
		return "tick"
	case EventCompleted:
		return "completed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

type Notification struct {
	Event    Event
	Snapshot models.Snapshot
}

// Observer 在引擎持有锁时被同步调用, 不能在回调里再调用同一个 Engine 的方法
type Observer interface {
	OnChange(Notification)
}

type ObserverFunc func(Notification)

func (f ObserverFunc) OnChange(n Notification) { f(n) }

type Option func(*Engine)

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine 是一个固定时长的倒计时, 到零时自动回到初始状态, 可以无限次重新开始
type Engine struct {
	mu          sync.Mutex
	total       int
	secondsLeft int
	running     bool
	interval    time.Duration

	// gen 在每次调度或取消时递增, 过期的 tick 直接丢弃
	gen    uint64
	handle Handle

	sched     Scheduler
	observers []Observer
	log       *zap.Logger
}

func NewEngine(totalSeconds int, opts ...Option) (*Engine, error) {
	if totalSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	e := &Engine{
		total:       totalSeconds,
		secondsLeft: totalSeconds,
		interval:    DefaultInterval,
		sched:       TickerScheduler{},
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return e, nil
}

// Subscribe 在引擎创建后追加观察者
func (e *Engine) Subscribe(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Start 开始倒计时, 已经在运行时什么也不做
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}
	e.running = true
	e.gen++
	gen := e.gen
	e.handle = e.sched.Every(e.interval, func() { e.tick(gen) })

	e.log.Debug("countdown started",
		zap.Int("total_seconds", e.total),
		zap.Int("seconds_left", e.secondsLeft),
		zap.Duration("interval", e.interval))
	e.notify(EventStarted)
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || gen != e.gen {
		return
	}

	e.secondsLeft--
	if e.secondsLeft > 0 {
		e.notify(EventTick)
		return
	}

	// 到零: 停止调度并复位, 只发出一次通知
	e.stopLocked()
	e.secondsLeft = e.total
	e.log.Debug("countdown completed", zap.Int("total_seconds", e.total))
	e.notify(EventCompleted)
}

// Cancel 停止调度但保留剩余秒数, 用于销毁组件; 空闲时调用没有任何效果
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.stopLocked()
	e.log.Debug("countdown cancelled", zap.Int("seconds_left", e.secondsLeft))
}

// Reset 停止调度并回到初始状态
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running && e.secondsLeft == e.total {
		return
	}
	e.stopLocked()
	e.secondsLeft = e.total
	e.notify(EventReset)
}

func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) TotalSeconds() int {
	return e.total
}

func (e *Engine) stopLocked() {
	if e.handle != nil {
		e.handle.Stop()
		e.handle = nil
	}
	e.gen++
	e.running = false
}

func (e *Engine) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		TotalSeconds: e.total,
		SecondsLeft:  e.secondsLeft,
		Running:      e.running,
		Progress:     models.Progress(e.total, e.secondsLeft),
	}
}

func (e *Engine) notify(ev Event) {
	n := Notification{Event: ev, Snapshot: e.snapshotLocked()}
	for _, o := range e.observers {
		o.OnChange(n)
	}
}
