package cli

import (
	"bytes"
	"testing"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() (timetable.Timetable, timetable.Report) {
	grid := timetable.Grid{
		{"Расписание"},
		{"Понедельник", "101", "102"},
		{"09.00-10.35", "Матанализ & практика", "Алгебра"},
		{"10.45-12.20", "Физика", "Физра"},
		{"10.45-12.20", "Химия", "Физра"},
	}
	return timetable.Extract([]timetable.Grid{grid})
}

func TestDumpTimetable(t *testing.T) {
	table, report := sampleTable()

	var out bytes.Buffer
	require.NoError(t, dumpTimetable(&out, table, report, "101", true))

	text := out.String()
	assert.Contains(t, text, "Группа 101, нечётная неделя")
	assert.Contains(t, text, "Понедельник")
	assert.Contains(t, text, "1) (09.00-10.35) Матанализ & практика")
	assert.Contains(t, text, "2) (10.45-12.20) Физика")
	assert.NotContains(t, text, "Химия")
	assert.NotContains(t, text, "<b>")
	assert.NotContains(t, text, "Группа 102")
}

func TestDumpTimetableEvenAllGroups(t *testing.T) {
	table, report := sampleTable()

	var out bytes.Buffer
	require.NoError(t, dumpTimetable(&out, table, report, "", false))

	text := out.String()
	assert.Contains(t, text, "Группа 101, чётная неделя")
	assert.Contains(t, text, "Группа 102, чётная неделя")
	assert.Contains(t, text, "Химия")
	assert.Contains(t, text, "Физра")
}

func TestDumpUnknownGroup(t *testing.T) {
	table, report := sampleTable()
	assert.Error(t, dumpTimetable(&bytes.Buffer{}, table, report, "999", false))
}

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	printResults(cmd, []*service.IngestResult{
		{File: "a.pdf", Groups: 3, SkippedGroups: []string{"бакалавры"}},
		{File: "b.pdf", Skipped: true},
	})

	text := out.String()
	assert.Contains(t, text, "Обработано: 2 файла")
	assert.Contains(t, text, "a.pdf 3 группы")
	assert.Contains(t, text, "пропущены группы: бакалавры")
	assert.Contains(t, text, "b.pdf (уже импортирован)")
}

func TestRootHasCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ingest", "dump", "groups", "delete-group", "documents", "render"} {
		assert.True(t, names[want], want)
	}
}
