package timetable

import (
	"fmt"
	"testing"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageBuilder собирает страницу в формате факультетской таблицы
type pageBuilder struct {
	grid   Grid
	groups []string
}

func newPage(title string, groups ...string) *pageBuilder {
	p := &pageBuilder{groups: groups}
	if title != "" {
		p.grid = append(p.grid, []string{title})
	}
	return p
}

func (p *pageBuilder) day(name string) *pageBuilder {
	row := append([]string{name}, p.groups...)
	p.grid = append(p.grid, row)
	return p
}

func (p *pageBuilder) row(label string, cells ...string) *pageBuilder {
	p.grid = append(p.grid, append([]string{label}, cells...))
	return p
}

func (p *pageBuilder) build() Grid {
	return p.grid
}

func numberedGroups(from, to int) []string {
	var groups []string
	for g := from; g <= to; g++ {
		groups = append(groups, fmt.Sprint(g))
	}
	return groups
}

func TestExtractSingleRow(t *testing.T) {
	grid := newPage("", "101", "102").
		day("Понедельник").
		row("09.00-10.35", "A", "B").
		build()

	result, report := Extract([]Grid{grid})

	require.Contains(t, result, "101")
	require.Contains(t, result, "102")
	assert.Equal(t, []model.Lesson{model.NewSingle("09.00", "10.35", "A")}, result["101"][model.Monday])
	assert.Equal(t, []model.Lesson{model.NewSingle("09.00", "10.35", "B")}, result["102"][model.Monday])
	assert.Empty(t, result["101"][model.Saturday])
	assert.Len(t, result["101"], 6)
	assert.Equal(t, 1, report.Recognized)
}

func TestExtractMergedRows(t *testing.T) {
	grid := newPage("Расписание", "101", "102").
		day("Вторник").
		row("10.45-12.20", "X", "Y").
		row("10.45-12.20", "X", "Z").
		build()

	result, report := Extract([]Grid{grid})

	assert.Equal(t, []model.Lesson{model.NewSingle("10.45", "12.20", "X")}, result["101"][model.Tuesday])
	assert.Equal(t, []model.Lesson{model.NewDouble("10.45", "12.20", "Y", "Z")}, result["102"][model.Tuesday])
	assert.Equal(t, 1, report.MergedRows)
}

func TestExtractDropsHeaderAndDoubleDateColumn(t *testing.T) {
	grid := Grid{
		{"Расписание занятий на осенний семестр"},
		{"Понедельник", "101", "102", "Понедельник"},
		{"09.00-10.35", "A", "B", "01.09"},
	}

	result, _ := Extract([]Grid{grid})

	assert.Equal(t, []string{"101", "102"}, result.Groups())
	assert.Equal(t, "B", result["102"][model.Monday][0].Description)
}

func TestExtractUnrecognizedRowsAreSkipped(t *testing.T) {
	grid := newPage("", "101").
		day("Среда").
		row("Перерыв", "обед").
		row("12.50-14.25", "Алгебра").
		row("", "").
		build()

	result, report := Extract([]Grid{grid})

	assert.Equal(t, []model.Lesson{model.NewSingle("12.50", "14.25", "Алгебра")}, result["101"][model.Wednesday])
	assert.Equal(t, 2, report.Unrecognized)
}

func TestExtractOrphanTimeRow(t *testing.T) {
	grid := Grid{
		{"Расписание"},
		{"09.00-10.35", "A"},
		{"Понедельник", "101"},
		{"10.45-12.20", "B"},
	}

	result, report := Extract([]Grid{grid})

	assert.Equal(t, []model.Lesson{model.NewSingle("10.45", "12.20", "B")}, result["101"][model.Monday])
	assert.Equal(t, 1, report.Orphaned)
}

func TestExtractUnrecognizedPage(t *testing.T) {
	grid := Grid{
		{"Примечания"},
		{"Занятия физкультурой проводятся в спорткомплексе"},
	}

	result, report := Extract([]Grid{grid, nil})

	assert.Empty(t, result)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 0, report.Recognized)
}

func TestExtractKeepsBlankDescriptions(t *testing.T) {
	grid := newPage("", "101").
		day("Четверг").
		row("09.00-10.35", "").
		row("10.45-12.20", "Физика").
		build()

	result, _ := Extract([]Grid{grid})

	require.Len(t, result["101"][model.Thursday], 2)
	assert.Equal(t, "", result["101"][model.Thursday][0].Description)
}

func TestExtractRaggedRows(t *testing.T) {
	grid := newPage("", "101", "102").
		day("Пятница").
		row("09.00-10.35", "A").
		build()

	result, _ := Extract([]Grid{grid})

	assert.Equal(t, "", result["102"][model.Friday][0].Description)
}

func TestExtractAccumulatesGroupsAcrossPages(t *testing.T) {
	first := newPage("", "101").
		day("Понедельник").
		row("09.00-10.35", "A").
		build()
	second := newPage("", "101").
		day("Четверг").
		row("09.00-10.35", "B").
		build()

	result, _ := Extract([]Grid{first, second})

	assert.Len(t, result["101"][model.Monday], 1)
	assert.Len(t, result["101"][model.Thursday], 1)
}

func TestExtractRepeatedPageDoesNotDuplicate(t *testing.T) {
	page := newPage("Расписание", "101", "102").
		day("Понедельник").
		row("09.00-10.35", "A", "B").
		row("10.45-12.20", "C", "D").
		day("Вторник").
		row("09.00-10.35", "E", "F").
		build()

	once, _ := Extract([]Grid{page})
	twice, report := Extract([]Grid{page, page})

	assert.Equal(t, once, twice)
	assert.Len(t, twice["101"][model.Monday], 2)
	assert.Equal(t, 4, report.Replaced)
}

func TestExtractLaterPageReplacesDay(t *testing.T) {
	first := newPage("", "101", "102").
		day("Среда").
		row("09.00-10.35", "Старое", "B").
		build()
	second := newPage("", "101").
		day("Среда").
		row("12.50-14.25", "Новое").
		build()

	result, report := Extract([]Grid{first, second})

	assert.Equal(t, []model.Lesson{model.NewSingle("12.50", "14.25", "Новое")}, result["101"][model.Wednesday])
	// группы, которых нет на второй странице, не трогаются
	assert.Equal(t, []model.Lesson{model.NewSingle("09.00", "10.35", "B")}, result["102"][model.Wednesday])
	assert.Equal(t, 1, report.Replaced)
}

func TestExtractDoubleDateColumnOnShortHeaderRow(t *testing.T) {
	grid := Grid{
		{"Понедельник", "101", "Понедельник"},
		{"09.00-10.35", "A", "01.09", "08.09"},
		{"10.45-12.20", "B"},
	}

	result, _ := Extract([]Grid{grid})

	assert.Equal(t, []string{"101"}, result.Groups())
	assert.Equal(t, []model.Lesson{
		model.NewSingle("09.00", "10.35", "A"),
		model.NewSingle("10.45", "12.20", "B"),
	}, result["101"][model.Monday])
}

func TestDropColumn(t *testing.T) {
	grid := Grid{
		{"a", "b", "c"},
		{"d", "e", "f", "g"},
		{"h"},
	}

	assert.Equal(t, Grid{
		{"a", "b"},
		{"d", "e", "g"},
		{"h"},
	}, grid.dropColumn(2))
	// исходная таблица не меняется
	assert.Equal(t, "c", grid[0][2])
}

func TestExtractFullWeekGroups(t *testing.T) {
	groups := append(numberedGroups(101, 120), "141", "142")
	page := newPage("Расписание 1 курса", groups...)
	cells := make([]string, len(groups))
	for i, g := range groups {
		cells[i] = "Лекция " + g
	}
	for _, d := range model.StudyDays {
		page.day(d.String()).
			row("09.00-10.35", cells...).
			row("10.45-12.20", cells...).
			row("10.45-12.20", cells...)
	}

	result, report := Extract([]Grid{page.build()})

	assert.ElementsMatch(t, groups, result.Groups())
	assert.Equal(t, 6, report.Weekdays)
	for _, g := range groups {
		for _, d := range model.StudyDays {
			assert.Len(t, result[g][d], 2)
		}
	}
}

func TestExtractSubgroupsAndNoise(t *testing.T) {
	grid := newPage("", "Время", "319/1", "319/2", "341/1", "341/2").
		day("Суббота").
		row("09.00-10.35", "", "Спецкурс", "Спецкурс", "Семинар", "Семинар").
		build()

	result, _ := Extract([]Grid{grid})

	assert.ElementsMatch(t, []string{"Время", "319/1", "319/2", "341/1", "341/2"}, result.Groups())
	var valid []string
	for _, g := range result.Groups() {
		if model.IsValidGroupNumber(g) {
			valid = append(valid, g)
		}
	}
	assert.Equal(t, []string{"319/1", "319/2", "341/1", "341/2"}, valid)
}

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		label string
		kind  RowKind
		start string
		end   string
	}{
		{"Понедельник", RowWeekday, "", ""},
		{"09.00-10.35", RowTimeRange, "09.00", "10.35"},
		{" 9:00 - 10:35 ", RowTimeRange, "09.00", "10.35"},
		{"Воскресенье", RowUnrecognized, "", ""},
		{"Иванов-Петров", RowUnrecognized, "", ""},
		{"09.00-10.35-12.00", RowUnrecognized, "", ""},
		{"", RowUnrecognized, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			row := ClassifyRow(tt.label)
			assert.Equal(t, tt.kind, row.Kind)
			assert.Equal(t, tt.start, row.Start)
			assert.Equal(t, tt.end, row.End)
		})
	}
}

func TestResolve(t *testing.T) {
	day := []model.Lesson{
		model.NewSingle("09.00", "10.35", "A"),
		model.NewDouble("10.45", "12.20", "B", "C"),
	}

	assert.Equal(t, []model.Lesson{
		model.NewSingle("09.00", "10.35", "A"),
		model.NewSingle("10.45", "12.20", "B"),
	}, Resolve(day, true))

	assert.Equal(t, []model.Lesson{
		model.NewSingle("09.00", "10.35", "A"),
		model.NewSingle("10.45", "12.20", "C"),
	}, Resolve(day, false))
}

func TestResolveWeek(t *testing.T) {
	days := map[model.Weekday][]model.Lesson{
		model.Monday: {model.NewDouble("09.00", "10.35", "odd", "even")},
	}

	week := ResolveWeek(days, false)

	assert.Equal(t, "even", week[model.Monday][0].Description)
	assert.NotNil(t, week[model.Sunday])
	assert.Empty(t, week[model.Sunday])
	assert.Empty(t, week[model.Saturday])
}
