package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"HandWash/internal/models"
	"HandWash/internal/sound"
	"HandWash/internal/storage"
	"HandWash/internal/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const DefaultCountdownName = "Hand wash"

var (
	ErrEmptyName     = errors.New("countdown name is required")
	ErrDuplicateName = errors.New("countdown name already exists")
	ErrInvalidLength = errors.New("countdown length must be a positive number of seconds")
)

// TimerManager 管理默认倒计时和用户保存的预设, 每个倒计时有独立的引擎
type TimerManager struct {
	// mu 保护 views 和 container, 配置重载会从监听 goroutine 调用 SetDefaultSeconds
	mu        sync.Mutex
	container *fyne.Container
	views     []*CountdownView
	addButton *widget.Button
	db        *storage.Database
	player    sound.Player
	log       *zap.Logger
	opts      []timer.Option

	onRecorded func()
}

// NewTimerManager 创建默认倒计时并加载已保存的预设, opts 应用到每个引擎
func NewTimerManager(db *storage.Database, totalSeconds int, player sound.Player, logger *zap.Logger, opts ...timer.Option) (*TimerManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tm := &TimerManager{
		db:     db,
		player: player,
		log:    logger,
		opts:   append([]timer.Option{timer.WithLogger(logger)}, opts...),
	}

	tm.addButton = widget.NewButton("Add countdown", tm.showAddDialog)
	tm.container = container.NewVBox(
		tm.addButton,
		container.NewGridWithColumns(2),
	)

	def, err := tm.newView(DefaultCountdownName, totalSeconds)
	if err != nil {
		return nil, err
	}
	tm.views = append(tm.views, def)

	if err := tm.loadPresets(); err != nil {
		return nil, err
	}
	tm.updateLayout()
	return tm, nil
}

func (tm *TimerManager) newView(name string, totalSeconds int) (*CountdownView, error) {
	engine, err := timer.NewEngine(totalSeconds, tm.opts...)
	if err != nil {
		return nil, fmt.Errorf("countdown %q: %w", name, err)
	}
	view := NewCountdownView(name, engine, tm.player, tm.log)
	view.SetOnComplete(tm.record)
	return view, nil
}

func (tm *TimerManager) loadPresets() error {
	presets, err := tm.db.ListPresets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	for _, preset := range presets {
		view, err := tm.newView(preset.Name, preset.TotalSeconds)
		if err != nil {
			tm.log.Warn("skipping preset", zap.String("name", preset.Name), zap.Error(err))
			continue
		}
		tm.attachDelete(view)
		tm.views = append(tm.views, view)
	}
	return nil
}

func (tm *TimerManager) attachDelete(view *CountdownView) {
	view.SetOnDelete(func() {
		if err := tm.RemovePreset(view.Name()); err != nil {
			tm.log.Error("delete preset failed", zap.String("name", view.Name()), zap.Error(err))
		}
	})
}

func (tm *TimerManager) record(r models.CountdownRecord) {
	if err := tm.db.SaveRecord(&r); err != nil {
		tm.log.Error("save countdown record failed", zap.String("countdown", r.Preset), zap.Error(err))
		return
	}
	tm.log.Info("countdown completed",
		zap.String("countdown", r.Preset),
		zap.Int("total_seconds", r.TotalSeconds),
		zap.String("record", r.ID))
	if tm.onRecorded != nil {
		tm.onRecorded()
	}
}

// SetOnRecorded 在每次保存完成记录后调用
func (tm *TimerManager) SetOnRecorded(callback func()) {
	tm.onRecorded = callback
}

// AddPreset 保存新的预设并为它创建倒计时
func (tm *TimerManager) AddPreset(name string, totalSeconds int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if totalSeconds <= 0 {
		return ErrInvalidLength
	}
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.find(name) >= 0 {
		return ErrDuplicateName
	}

	view, err := tm.newView(name, totalSeconds)
	if err != nil {
		return err
	}
	if err := tm.db.SavePreset(&models.TimerPreset{Name: name, TotalSeconds: totalSeconds}); err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	tm.attachDelete(view)
	tm.views = append(tm.views, view)
	tm.updateLayout()
	return nil
}

// RemovePreset 停止倒计时并删除预设, 默认倒计时不能删除
func (tm *TimerManager) RemovePreset(name string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	i := tm.find(name)
	if i <= 0 {
		return storage.ErrPresetNotFound
	}
	if err := tm.db.DeletePreset(name); err != nil {
		return err
	}

	tm.views[i].Stop()
	tm.views = append(tm.views[:i], tm.views[i+1:]...)
	tm.updateLayout()
	return nil
}

// SetDefaultSeconds 在配置变化后替换默认倒计时
func (tm *TimerManager) SetDefaultSeconds(totalSeconds int) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.views[0].engine.TotalSeconds() == totalSeconds {
		return nil
	}
	view, err := tm.newView(DefaultCountdownName, totalSeconds)
	if err != nil {
		return err
	}
	tm.views[0].Stop()
	tm.views[0] = view
	tm.updateLayout()
	return nil
}

// Stop 取消所有倒计时
func (tm *TimerManager) Stop() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	for _, v := range tm.views {
		v.Stop()
	}
}

// Views 返回当前倒计时的副本
func (tm *TimerManager) Views() []*CountdownView {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	views := make([]*CountdownView, len(tm.views))
	copy(views, tm.views)
	return views
}

func (tm *TimerManager) Container() *fyne.Container {
	return tm.container
}

// find 和 updateLayout 需要持有 mu
func (tm *TimerManager) find(name string) int {
	for i, v := range tm.views {
		if v.Name() == name {
			return i
		}
	}
	return -1
}

func (tm *TimerManager) showAddDialog() {
	w := fyne.CurrentApp().NewWindow("Add countdown")

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Name")

	secondsEntry := widget.NewEntry()
	secondsEntry.SetText("20")

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Name", Widget: nameEntry},
			{Text: "Seconds", Widget: secondsEntry},
		},
		OnSubmit: func() {
			seconds, err := strconv.Atoi(strings.TrimSpace(secondsEntry.Text))
			if err != nil {
				dialog.ShowError(ErrInvalidLength, w)
				return
			}
			if err := tm.AddPreset(nameEntry.Text, seconds); err != nil {
				dialog.ShowError(err, w)
				return
			}
			w.Close()
		},
		OnCancel: w.Close,
	}

	w.SetContent(form)
	w.Resize(fyne.NewSize(300, 160))
	w.Show()
}

func (tm *TimerManager) updateLayout() {
	grid := container.NewGridWithColumns(2)
	for _, v := range tm.views {
		grid.Add(v.Container())
	}

	tm.container.Objects[1] = grid
	tm.container.Refresh()
}
