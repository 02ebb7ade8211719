package timetable

import "github.com/Freeeeeet/vmk_schedule_bot/internal/model"

// Resolve оставляет только пары заданной недели.
// Double раскрывается в Single: нечётная неделя берёт OddWeek, чётная - EvenWeek.
func Resolve(day []model.Lesson, odd bool) []model.Lesson {
	resolved := make([]model.Lesson, 0, len(day))
	for _, l := range day {
		if !l.IsDouble() {
			resolved = append(resolved, l)
			continue
		}
		desc := l.EvenWeek
		if odd {
			desc = l.OddWeek
		}
		resolved = append(resolved, model.NewSingle(l.StartTime, l.EndTime, desc))
	}
	return resolved
}

// ResolveWeek раскрывает все учебные дни группы для одной чётности
func ResolveWeek(days map[model.Weekday][]model.Lesson, odd bool) model.Week {
	var week model.Week
	for _, d := range model.StudyDays {
		week[d] = Resolve(days[d], odd)
	}
	week[model.Sunday] = []model.Lesson{}
	return week
}
