package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSchedule(t *testing.T) (*ScheduleService, *memorySchedules) {
	schedules := newMemorySchedules()

	var odd, even [7][]string
	odd[model.Monday] = model.EncodeLessons([]model.Lesson{
		model.NewSingle("09.00", "10.35", "Матанализ"),
		model.NewSingle("10.45", "12.20", "Алгебра"),
	})
	even[model.Monday] = model.EncodeLessons([]model.Lesson{
		model.NewSingle("09.00", "10.35", "Матанализ"),
		model.NewSingle("10.45", "12.20", "Физика"),
	})
	schedules.weeks[weekKey{"101", true}] = odd
	schedules.weeks[weekKey{"101", false}] = even

	return NewScheduleService(schedules, Calendar{Location: time.UTC}, zaptest.NewLogger(t)), schedules
}

func TestGetDay(t *testing.T) {
	svc, _ := newTestSchedule(t)

	text, err := svc.GetDay(context.Background(), "101", true, model.Monday, false, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "<b>Понедельник</b>\n1) (09.00-10.35) Матанализ\n2) (10.45-12.20) Алгебра\n", text)

	text, err = svc.GetDay(context.Background(), "101", false, model.Monday, false, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, text, "Физика")
}

func TestGetDaySunday(t *testing.T) {
	svc, _ := newTestSchedule(t)

	text, err := svc.GetDay(context.Background(), "unknown", true, model.Sunday, true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, formatting.SundayMessage, text)
}

func TestGetDayUnknownGroup(t *testing.T) {
	svc, _ := newTestSchedule(t)

	_, err := svc.GetDay(context.Background(), "999", true, model.Monday, false, time.Time{})
	assert.ErrorIs(t, err, ErrNoSchedule)

	_, err = svc.GetWeek(context.Background(), "999", true)
	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestGetDayMalformedStoredData(t *testing.T) {
	svc, schedules := newTestSchedule(t)
	var broken [7][]string
	broken[model.Monday] = []string{"0 09.00 'unterminated"}
	schedules.weeks[weekKey{"102", true}] = broken

	_, err := svc.GetDay(context.Background(), "102", true, model.Monday, false, time.Time{})
	assert.ErrorIs(t, err, model.ErrDecode)
}

func TestTodayAnnotates(t *testing.T) {
	svc, _ := newTestSchedule(t)
	// 2024-09-09 - понедельник 37-й (нечётной) недели
	now := time.Date(2024, 9, 9, 11, 0, 0, 0, time.UTC)

	text, err := svc.Today(context.Background(), "101", now)
	require.NoError(t, err)
	assert.Contains(t, text, "1) (09.00-10.35) Матанализ 🔴")
	assert.Contains(t, text, "2) (10.45-12.20) Алгебра 🟡")
}

func TestTomorrowUsesTomorrowsParity(t *testing.T) {
	svc, _ := newTestSchedule(t)
	// воскресенье 36-й (чётной) недели, завтра - понедельник нечётной
	now := time.Date(2024, 9, 8, 20, 0, 0, 0, time.UTC)

	text, err := svc.Tomorrow(context.Background(), "101", now)
	require.NoError(t, err)
	assert.Contains(t, text, "Алгебра")
	assert.NotContains(t, text, "🟢")
	assert.NotContains(t, text, "🔴")

	today, err := svc.Today(context.Background(), "101", now)
	require.NoError(t, err)
	assert.Equal(t, formatting.SundayMessage, today)
}

func TestInvertedCalendar(t *testing.T) {
	_, schedules := newTestSchedule(t)
	inverted := NewScheduleService(schedules, Calendar{Location: time.UTC, Inverted: true}, zaptest.NewLogger(t))
	now := time.Date(2024, 9, 9, 8, 0, 0, 0, time.UTC)

	text, err := inverted.Today(context.Background(), "101", now)
	require.NoError(t, err)
	assert.Contains(t, text, "Физика")
}

func TestGetWeek(t *testing.T) {
	svc, _ := newTestSchedule(t)

	text, err := svc.GetWeek(context.Background(), "101", true)
	require.NoError(t, err)
	for _, d := range model.StudyDays {
		assert.Contains(t, text, "<b>"+d.String()+"</b>")
	}
	assert.Contains(t, text, "Алгебра")
}

func TestListGroups(t *testing.T) {
	svc, _ := newTestSchedule(t)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, groups)

	known, err := svc.IsKnownGroup(context.Background(), "101")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = svc.IsKnownGroup(context.Background(), "102")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestCalendarWeekStart(t *testing.T) {
	cal := Calendar{Location: time.UTC}

	start := cal.WeekStart(time.Date(2024, 9, 12, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC), start)

	start = cal.WeekStart(time.Date(2024, 9, 15, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC), start)
}

func TestNewCalendar(t *testing.T) {
	cal, err := NewCalendar("Europe/Moscow", false)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", cal.Location.String())

	_, err = NewCalendar("Mars/Olympus", false)
	assert.Error(t, err)
}
