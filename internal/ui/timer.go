package ui

import (
	"fmt"
	"image/color"
	"time"

	"HandWash/internal/models"
	"HandWash/internal/sound"
	"HandWash/internal/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

var (
	textColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	timeColor = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
)

// CountdownView 显示一个倒计时, 是 timer.Engine 的观察者
type CountdownView struct {
	name      string
	engine    *timer.Engine
	player    sound.Player
	log       *zap.Logger
	startedAt time.Time

	onComplete func(models.CountdownRecord)
	onDelete   func()

	// UI 组件
	container   *fyne.Container
	nameLabel   *canvas.Text
	timeLabel   *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	resetButton *widget.Button
	deleteBtn   *widget.Button
}

func NewCountdownView(name string, engine *timer.Engine, player sound.Player, logger *zap.Logger) *CountdownView {
	if player == nil {
		player = sound.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &CountdownView{
		name:   name,
		engine: engine,
		player: player,
		log:    logger.With(zap.String("countdown", name)),
	}

	v.nameLabel = canvas.NewText(name, textColor)
	v.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.nameLabel.TextSize = 20
	v.nameLabel.Alignment = fyne.TextAlignCenter

	v.timeLabel = canvas.NewText("", timeColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.timeLabel.TextSize = 32
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.progress = widget.NewProgressBar()
	v.progress.Min = 0
	v.progress.Max = 100

	v.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), engine.Start)
	v.startButton.Importance = widget.HighImportance

	v.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), engine.Reset)
	v.resetButton.Importance = widget.MediumImportance

	v.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if v.onDelete != nil {
			v.onDelete()
		}
	})
	v.deleteBtn.Hide()

	topBar := container.NewBorder(nil, nil, nil, v.deleteBtn, container.NewPadded(v.nameLabel))
	controls := container.NewHBox(v.startButton, v.resetButton)

	v.container = container.NewPadded(container.NewVBox(
		topBar,
		container.NewPadded(v.timeLabel),
		v.progress,
		container.NewCenter(controls),
	))

	v.render(engine.Snapshot())
	engine.Subscribe(v)
	return v
}

// OnChange 在引擎锁内被调用, 这里只更新界面
func (v *CountdownView) OnChange(n timer.Notification) {
	switch n.Event {
	case timer.EventStarted:
		// 取消后继续时保留最初的开始时间
		if n.Snapshot.SecondsLeft == n.Snapshot.TotalSeconds {
			v.startedAt = time.Now()
		}
	case timer.EventCompleted:
		v.player.Play()
		if v.onComplete != nil {
			v.onComplete(models.CountdownRecord{
				Preset:       v.name,
				TotalSeconds: n.Snapshot.TotalSeconds,
				StartedAt:    v.startedAt,
				CompletedAt:  time.Now(),
			})
		}
	}
	v.log.Debug("countdown changed",
		zap.Stringer("event", n.Event),
		zap.Stringer("state", n.Snapshot.State()),
		zap.Int("seconds_left", n.Snapshot.SecondsLeft))
	v.render(n.Snapshot)
}

func (v *CountdownView) render(s models.Snapshot) {
	v.timeLabel.Text = formatSeconds(s.SecondsLeft)
	v.timeLabel.Refresh()
	v.progress.SetValue(s.Progress)
	if s.State() == models.StateRunning {
		v.startButton.Disable()
	} else {
		v.startButton.Enable()
	}
}

// formatSeconds 将剩余秒数转换为显示格式
func formatSeconds(n int) string {
	if n < 60 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// SetOnComplete 设置完成回调函数
func (v *CountdownView) SetOnComplete(callback func(models.CountdownRecord)) {
	v.onComplete = callback
}

// SetOnDelete 设置删除回调并显示删除按钮
func (v *CountdownView) SetOnDelete(callback func()) {
	v.onDelete = callback
	v.deleteBtn.Show()
}

// Stop 取消尚未触发的 tick
func (v *CountdownView) Stop() {
	v.engine.Cancel()
}

func (v *CountdownView) Name() string {
	return v.name
}

func (v *CountdownView) Container() *fyne.Container {
	return v.container
}
