package service

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
)

// Calendar считает время и чётность недели в часовом поясе факультета
type Calendar struct {
	Location *time.Location
	// Inverted меняет местами чётные и нечётные недели, если семестр начался с чётной ISO недели
	Inverted bool
}

func NewCalendar(timezone string, inverted bool) (Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Calendar{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return Calendar{Location: loc, Inverted: inverted}, nil
}

// In переводит момент в часовой пояс календаря
func (c Calendar) In(t time.Time) time.Time {
	if c.Location == nil {
		return t
	}
	return t.In(c.Location)
}

// IsOdd - нечётная ли учебная неделя у даты t
func (c Calendar) IsOdd(t time.Time) bool {
	return model.IsOddWeek(c.In(t)) != c.Inverted
}

// WeekStart - полночь понедельника недели, в которую попадает t
func (c Calendar) WeekStart(t time.Time) time.Time {
	t = c.In(t)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(model.WeekdayOf(day)))
}
