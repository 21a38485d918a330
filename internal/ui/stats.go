package ui

import (
	"fmt"
	"time"

	"HandWash/internal/models"
	"HandWash/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

type StatsView struct {
	container  *fyne.Container
	db         *storage.Database
	log        *zap.Logger
	period     models.Period
	dateRange  *widget.Select
	stats      *widget.Label
	refreshBtn *widget.Button
}

func NewStatsView(db *storage.Database, logger *zap.Logger) *StatsView {
	sv := &StatsView{
		db:     db,
		log:    logger,
		period: models.PeriodToday,
		stats:  widget.NewLabel(""),
	}
	sv.setup()
	return sv
}

func (sv *StatsView) setup() {
	title := widget.NewLabelWithStyle("Statistics", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	sv.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), sv.Refresh)

	labels := make([]string, len(models.Periods))
	for i, p := range models.Periods {
		labels[i] = p.Label()
	}
	sv.dateRange = widget.NewSelect(labels, func(selected string) {
		for _, p := range models.Periods {
			if p.Label() == selected {
				sv.period = p
			}
		}
		sv.Refresh()
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Time Range:"),
		sv.dateRange,
		sv.refreshBtn,
	)

	sv.container = container.NewVBox(
		title,
		toolbar,
		sv.stats,
	)

	sv.dateRange.SetSelected(sv.period.Label())
}

// Refresh 按当前选择的时间范围重新查询
func (sv *StatsView) Refresh() {
	stats, err := sv.db.Stats(sv.period.Since(time.Now()))
	if err != nil {
		sv.log.Error("load stats failed", zap.String("period", string(sv.period)), zap.Error(err))
		return
	}
	sv.stats.SetText(FormatStats(stats))
}

func FormatStats(s *models.CountdownStats) string {
	return fmt.Sprintf(
		"Countdowns: %d\n"+
			"Total Time: %d seconds\n"+
			"Average: %.1f seconds\n"+
			"Today's Countdowns: %d\n"+
			"Today's Time: %d seconds",
		s.TotalRuns,
		s.TotalSeconds,
		s.AverageSeconds(),
		s.TodayRuns,
		s.TodaySeconds,
	)
}

func (sv *StatsView) Container() *fyne.Container {
	return sv.container
}
