package models

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

var Periods = []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodAll}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "This Week"
	case PeriodMonth:
		return "This Month"
	default:
		return "All Time"
	}
}

// Since 返回统计区间的开始时间, 零值表示不限制开始时间
func (p Period) Since(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		return today
	case PeriodWeek:
		return today.AddDate(0, 0, -int(now.Weekday()))
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}
