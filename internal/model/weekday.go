package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday - день недели, понедельник = 0
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrWeekdayOutOfRange возвращается для номеров вне 0..6
var ErrWeekdayOutOfRange = errors.New("weekday out of range")

var weekdayNames = [...]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

// StudyDays - учебные дни в порядке следования
var StudyDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// NumberToWeekday переводит номер дня (0 - понедельник, 6 - воскресенье) в Weekday
func NumberToWeekday(n int) (Weekday, error) {
	if n < int(Monday) || n > int(Sunday) {
		return 0, fmt.Errorf("%w: %d", ErrWeekdayOutOfRange, n)
	}
	return Weekday(n), nil
}

// WeekdayByName ищет учебный день по названию из таблицы
func WeekdayByName(name string) (Weekday, bool) {
	name = strings.TrimSpace(name)
	for _, d := range StudyDays {
		if weekdayNames[d] == name {
			return d, true
		}
	}
	return 0, false
}

// WeekdayOf возвращает день недели даты
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday начинается с воскресенья
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// IsOddWeek - нечётный номер недели по ISO 8601
func IsOddWeek(t time.Time) bool {
	_, week := t.ISOWeek()
	return week%2 == 1
}

// Week - пары по дням недели, индекс совпадает с Weekday.
// Слот воскресенья всегда пустой.
type Week [7][]Lesson
