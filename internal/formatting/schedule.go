package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
)

// SundayMessage - ответ на запрос расписания на воскресенье
const SundayMessage = "Не волнуйтесь, это воскресенье 🥳"

// NoLessonsLine - строка для дня без пар
const NoLessonsLine = "Пар нет 🎉"

// NormalizeDescription схлопывает переводы строк и повторные пробелы
func NormalizeDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LessonDescription - описание пары одной строкой, пустое для окна.
// У двойной пары через " / " выводятся только непустые половины.
func LessonDescription(l model.Lesson) string {
	if !l.IsDouble() {
		return NormalizeDescription(l.Description)
	}
	parts := make([]string, 0, 2)
	for _, d := range []string{l.OddWeek, l.EvenWeek} {
		if d = NormalizeDescription(d); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, " / ")
}

// FormatDay возвращает строки дня вида "1) (09.00-10.35) Матанализ".
// Пустые пары пропускаются, но номер остаётся номером слота в таблице.
// Если annotate, к строке добавляется отметка статуса на момент now.
// Описания экранируются для HTML.
func FormatDay(lessons []model.Lesson, annotate bool, now time.Time) []string {
	lines := make([]string, 0, len(lessons))
	for i, l := range lessons {
		desc := LessonDescription(l)
		if desc == "" {
			continue
		}

		line := fmt.Sprintf("%d) (%s-%s) %s", i+1, l.StartTime, l.EndTime, html.EscapeString(desc))
		if annotate {
			if mark := GetLessonStatusDisplay(StatusAt(l.StartTime, l.EndTime, now)).Emoji; mark != "" {
				line += " " + mark
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// FormatDayMessage собирает блок дня: жирный заголовок и строки пар
func FormatDayMessage(weekday model.Weekday, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", weekday)
	if len(lines) == 0 {
		b.WriteString(NoLessonsLine)
		b.WriteByte('\n')
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatWeek собирает расписание на все учебные дни без отметок статуса
func FormatWeek(week model.Week) string {
	blocks := make([]string, 0, len(model.StudyDays))
	for _, d := range model.StudyDays {
		blocks = append(blocks, FormatDayMessage(d, FormatDay(week[d], false, time.Time{})))
	}
	return strings.Join(blocks, "\n")
}
