package timer

import (
	"sync"
	"time"
)

// Scheduler 负责周期性地调用回调函数
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Handle 是一个已调度的周期任务, Stop 可以重复调用
type Handle interface {
	Stop()
}

// TickerScheduler 使用 time.Ticker 实现真实时钟调度, 每个 Handle 对应一个 goroutine
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go h.run(fn)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	stopCh chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(fn func()) {
	defer h.ticker.Stop()
	for {
		select {
		case <-h.stopCh:
			return
		case <-h.ticker.C:
			// Stop 和 tick 同时就绪时优先退出
			select {
			case <-h.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

// Stop 不等待 goroutine 退出, 因此可以在 fn 内部调用
func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		close(h.stopCh)
	})
}
