package timetable

import (
	"sort"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
)

// Timetable - извлечённое расписание: группа -> день -> пары в порядке строк таблицы
type Timetable map[string]map[model.Weekday][]model.Lesson

// Groups возвращает номера групп в отсортированном порядке
func (t Timetable) Groups() []string {
	groups := make([]string, 0, len(t))
	for g := range t {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Report - статистика разбора, ошибок при извлечении не бывает
type Report struct {
	Pages        int
	Recognized   int // страниц, где нашлась строка с днём недели
	Weekdays     int
	TimeRows     int
	MergedRows   int // пар строк с одинаковым временем
	Unrecognized int
	Orphaned     int // строк времени до первого дня недели
	Replaced     int // дней группы, заменённых более поздней страницей
}

// Extract разбирает страницы расписания.
// Каждая страница обрабатывается одним проходом сверху вниз.
// День группы, встреченный на нескольких страницах, берётся с последней из них,
// поэтому повторённая страница не дублирует пары.
func Extract(grids []Grid) (Timetable, Report) {
	result := make(Timetable)
	var report Report

	for _, grid := range grids {
		report.Pages++
		if extractPage(grid, result, &report) {
			report.Recognized++
		}
	}

	return result, report
}

type groupDay struct {
	group   string
	weekday model.Weekday
}

func extractPage(grid Grid, result Timetable, report *Report) bool {
	if len(grid) == 0 {
		return false
	}

	if !isWeekdayName(grid.Cell(0, 0)) {
		grid = grid.dropFirstRow()
	}
	// столбец "двойной даты" справа определяется по строке дня недели
	if len(grid) > 0 {
		if last := len(grid[0]) - 1; last > 0 && isWeekdayName(grid.Cell(0, last)) {
			grid = grid.dropColumn(last)
		}
	}

	var (
		groups  []string
		weekday model.Weekday
		seen    bool
		cleared = make(map[groupDay]bool)
	)

	for i := 0; i < len(grid); {
		row := ClassifyRow(grid.Cell(i, 0))

		switch row.Kind {
		case RowWeekday:
			report.Weekdays++
			weekday = row.Weekday
			if !seen {
				seen = true
				groups = headerGroups(grid[i])
				for _, g := range groups {
					if _, ok := result[g]; ok {
						continue
					}
					days := make(map[model.Weekday][]model.Lesson, len(model.StudyDays))
					for _, d := range model.StudyDays {
						days[d] = []model.Lesson{}
					}
					result[g] = days
				}
			}
			for _, g := range groups {
				id := groupDay{group: g, weekday: weekday}
				if cleared[id] {
					continue
				}
				cleared[id] = true
				if len(result[g][weekday]) > 0 {
					report.Replaced++
				}
				result[g][weekday] = []model.Lesson{}
			}
			i++

		case RowTimeRange:
			report.TimeRows++
			if !seen {
				report.Orphaned++
				i++
				continue
			}

			if i+1 < len(grid) && grid.Cell(i+1, 0) == grid.Cell(i, 0) {
				report.MergedRows++
				for j, g := range groups {
					odd, even := grid.Cell(i, j+1), grid.Cell(i+1, j+1)
					result[g][weekday] = append(result[g][weekday], model.NewDouble(row.Start, row.End, odd, even))
				}
				i += 2
				continue
			}

			for j, g := range groups {
				result[g][weekday] = append(result[g][weekday], model.NewSingle(row.Start, row.End, grid.Cell(i, j+1)))
			}
			i++

		default:
			report.Unrecognized++
			i++
		}
	}

	return seen
}

func headerGroups(row []string) []string {
	if len(row) < 2 {
		return nil
	}
	groups := make([]string, 0, len(row)-1)
	g := Grid{row}
	for j := 1; j < len(row); j++ {
		groups = append(groups, g.Cell(0, j))
	}
	return groups
}
