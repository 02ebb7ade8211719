package timetable

import (
	"regexp"
	"strings"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
)

// RowKind - результат классификации строки по столбцу 0
type RowKind int

const (
	RowUnrecognized RowKind = iota
	RowWeekday
	RowTimeRange
)

func (k RowKind) String() string {
	switch k {
	case RowWeekday:
		return "weekday"
	case RowTimeRange:
		return "time_range"
	default:
		return "unrecognized"
	}
}

// Row - классифицированная строка
type Row struct {
	Kind    RowKind
	Weekday model.Weekday
	Start   string
	End     string
}

var clockPattern = regexp.MustCompile(`^\d{1,2}[.:]\d{2}$`)

// ClassifyRow определяет тип строки по метке в столбце 0.
// Метка делится по '-': одна часть с названием дня даёт RowWeekday,
// две части вида ЧЧ.ММ дают RowTimeRange, всё остальное - RowUnrecognized.
func ClassifyRow(label string) Row {
	parts := strings.Split(strings.TrimSpace(label), "-")

	switch len(parts) {
	case 1:
		if d, ok := model.WeekdayByName(parts[0]); ok {
			return Row{Kind: RowWeekday, Weekday: d}
		}
	case 2:
		start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if clockPattern.MatchString(start) && clockPattern.MatchString(end) {
			return Row{
				Kind:  RowTimeRange,
				Start: normalizeClock(start),
				End:   normalizeClock(end),
			}
		}
	}

	return Row{Kind: RowUnrecognized}
}

// normalizeClock приводит "9:00" к "09.00"
func normalizeClock(s string) string {
	s = strings.ReplaceAll(s, ":", ".")
	if len(s) == 4 {
		s = "0" + s
	}
	return s
}

// isWeekdayName - ячейка содержит ровно название учебного дня
func isWeekdayName(s string) bool {
	_, ok := model.WeekdayByName(s)
	return ok
}
