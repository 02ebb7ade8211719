package formatting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock переводит "ЧЧ.ММ" в минуты от полуночи
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(s), ":", "."), ".")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH.MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("parse clock %q: bad hours", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: bad minutes", s)
	}
	return hours*60 + minutes, nil
}

// MinutesOfDay - минуты от полуночи для момента t
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// StatusAt определяет статус пары [start, end) в момент now
func StatusAt(start, end string, now time.Time) LessonStatus {
	from, err := ParseClock(start)
	if err != nil {
		return LessonStatusUnknown
	}
	to, err := ParseClock(end)
	if err != nil {
		return LessonStatusUnknown
	}

	current := MinutesOfDay(now)
	switch {
	case current < from:
		return LessonStatusUpcoming
	case current < to:
		return LessonStatusInProgress
	default:
		return LessonStatusCompleted
	}
}

// GetMonthName возвращает название месяца на русском в родительном падеже
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return names[month]
}

// FormatDayMonth - "2 сентября"
func FormatDayMonth(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), GetMonthName(t.Month()))
}
