// Package exporter выгружает расписание недели картинкой и календарём.
package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	ics "github.com/arran4/golang-ical"
)

// CalendarRequest - параметры выгрузки календаря
type CalendarRequest struct {
	Group string
	// From - момент внутри первой выгружаемой недели
	From  time.Time
	Weeks int
	// Odd и Even - раскрытые недели каждой чётности
	Odd  model.Week
	Even model.Week
	// IsOdd определяет чётность недели по её понедельнику
	IsOdd func(monday time.Time) bool
}

// GenerateICS пишет iCalendar с парами группы на req.Weeks недель вперёд
func GenerateICS(w io.Writer, req CalendarRequest) error {
	if req.Weeks <= 0 {
		return fmt.Errorf("generate ics: weeks must be positive, got %d", req.Weeks)
	}
	if req.IsOdd == nil {
		req.IsOdd = model.IsOddWeek
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Расписание " + req.Group)

	loc := req.From.Location()
	from := time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, loc)
	monday := from.AddDate(0, 0, -int(model.WeekdayOf(from)))
	stamp := time.Now()

	for i := 0; i < req.Weeks; i++ {
		weekStart := monday.AddDate(0, 0, 7*i)
		week := req.Even
		if req.IsOdd(weekStart) {
			week = req.Odd
		}

		for _, d := range model.StudyDays {
			date := weekStart.AddDate(0, 0, int(d))
			for n, l := range week[d] {
				summary := formatting.LessonDescription(l)
				if summary == "" {
					continue
				}
				start, end, err := lessonBounds(date, l)
				if err != nil {
					continue
				}

				id := fmt.Sprintf("%s-%s-%d@vmk-schedule", strings.ReplaceAll(req.Group, "/", "-"), date.Format("20060102"), n+1)
				event := cal.AddEvent(id)
				event.SetDtStampTime(stamp)
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(summary)
				event.SetDescription(fmt.Sprintf("Группа %s, пара %d", req.Group, n+1))
			}
		}
	}

	return cal.SerializeTo(w)
}

func lessonBounds(date time.Time, l model.Lesson) (time.Time, time.Time, error) {
	start, err := formatting.ParseClock(l.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := formatting.ParseClock(l.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return wallClock(date, start), wallClock(date, end), nil
}

// wallClock - время minutes от начала суток date по местным часам
func wallClock(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location())
}
