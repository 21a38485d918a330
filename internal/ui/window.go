package ui

import (
	"HandWash/internal/config"
	"HandWash/internal/sound"
	"HandWash/internal/storage"
	"HandWash/internal/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"
)

type MainWindow struct {
	window       fyne.Window
	timerManager *TimerManager
	howTo        *HowToPanel
	stats        *StatsView
}

func NewMainWindow(app fyne.App, cfg *config.Config, db *storage.Database, player sound.Player, logger *zap.Logger, opts ...timer.Option) (*MainWindow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]timer.Option{timer.WithInterval(cfg.Timer.TickInterval)}, opts...)
	tm, err := NewTimerManager(db, cfg.Timer.TotalSeconds, player, logger, opts...)
	if err != nil {
		return nil, err
	}

	w := &MainWindow{
		window:       app.NewWindow(cfg.App.Name),
		timerManager: tm,
		howTo:        NewHowToPanel(cfg.HowTo, cfg.Sound.Credit, logger),
		stats:        NewStatsView(db, logger),
	}
	w.setup()
	w.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))
	return w, nil
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	w.timerManager.SetOnRecorded(w.stats.Refresh)

	tabs := container.NewAppTabs(
		container.NewTabItem("Timer", w.timerManager.Container()),
		container.NewTabItem("How to", w.howTo.Container()),
		container.NewTabItem("Statistics", w.stats.Container()),
	)

	w.window.SetContent(tabs)
	w.window.SetOnClosed(w.timerManager.Stop)
}

// ApplyConfig 应用重新加载的配置
func (w *MainWindow) ApplyConfig(cfg *config.Config) error {
	return w.timerManager.SetDefaultSeconds(cfg.Timer.TotalSeconds)
}

func (w *MainWindow) TimerManager() *TimerManager {
	return w.timerManager
}

func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}
