package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// LessonKind - тег варианта пары
type LessonKind int

const (
	// LessonSingle - одна и та же пара каждую неделю
	LessonSingle LessonKind = 0
	// LessonDouble - разные пары по нечётным и чётным неделям
	LessonDouble LessonKind = 1
)

// ErrDecode возвращается, если строка не является закодированной парой
var ErrDecode = errors.New("malformed lesson")

// DecodeError описывает, какую строку не удалось разобрать и почему
type DecodeError struct {
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode lesson %q: %s", e.Input, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// Lesson - одна строка расписания группы.
// Для LessonSingle заполнено Description, для LessonDouble - OddWeek и EvenWeek.
type Lesson struct {
	Kind        LessonKind
	StartTime   string // HH.MM
	EndTime     string // HH.MM
	Description string
	OddWeek     string
	EvenWeek    string
}

// NewSingle создаёт пару без чередования по неделям
func NewSingle(start, end, description string) Lesson {
	return Lesson{
		Kind:        LessonSingle,
		StartTime:   start,
		EndTime:     end,
		Description: description,
	}
}

// NewDouble создаёт чередующуюся пару.
// Если описания совпадают, чередования нет и возвращается Single.
func NewDouble(start, end, odd, even string) Lesson {
	if odd == even {
		return NewSingle(start, end, odd)
	}
	return Lesson{
		Kind:      LessonDouble,
		StartTime: start,
		EndTime:   end,
		OddWeek:   odd,
		EvenWeek:  even,
	}
}

// IsDouble сообщает, чередуется ли пара по неделям
func (l Lesson) IsDouble() bool {
	return l.Kind == LessonDouble
}

// Encode возвращает каноническую строку пары:
//
//	0 <start> <end> '<description>'
//	1 <start> <end> '<odd>' '<even>'
func (l Lesson) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s %s ", l.Kind, l.StartTime, l.EndTime)
	if l.Kind == LessonDouble {
		b.WriteString(quote(l.OddWeek))
		b.WriteByte(' ')
		b.WriteString(quote(l.EvenWeek))
	} else {
		b.WriteString(quote(l.Description))
	}
	return b.String()
}

// quote заключает строку в одинарные кавычки, как это делает POSIX shell
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// DecodeLesson разбирает строку, полученную из Encode
func DecodeLesson(s string) (Lesson, error) {
	tokens, err := shellquote.Split(s)
	if err != nil {
		return Lesson{}, &DecodeError{Input: s, Reason: err.Error()}
	}
	if len(tokens) == 0 {
		return Lesson{}, &DecodeError{Input: s, Reason: "empty"}
	}

	switch tokens[0] {
	case "0":
		if len(tokens) != 4 {
			return Lesson{}, &DecodeError{Input: s, Reason: fmt.Sprintf("single lesson needs 4 tokens, got %d", len(tokens))}
		}
		return Lesson{
			Kind:        LessonSingle,
			StartTime:   tokens[1],
			EndTime:     tokens[2],
			Description: tokens[3],
		}, nil
	case "1":
		if len(tokens) != 5 {
			return Lesson{}, &DecodeError{Input: s, Reason: fmt.Sprintf("double lesson needs 5 tokens, got %d", len(tokens))}
		}
		return Lesson{
			Kind:      LessonDouble,
			StartTime: tokens[1],
			EndTime:   tokens[2],
			OddWeek:   tokens[3],
			EvenWeek:  tokens[4],
		}, nil
	default:
		return Lesson{}, &DecodeError{Input: s, Reason: fmt.Sprintf("unknown kind %q", tokens[0])}
	}
}

// EncodeLessons кодирует список пар с сохранением порядка
func EncodeLessons(lessons []Lesson) []string {
	encoded := make([]string, 0, len(lessons))
	for _, l := range lessons {
		encoded = append(encoded, l.Encode())
	}
	return encoded
}

// DecodeLessons разбирает список, останавливаясь на первой испорченной строке
func DecodeLessons(encoded []string) ([]Lesson, error) {
	lessons := make([]Lesson, 0, len(encoded))
	for i, s := range encoded {
		l, err := DecodeLesson(s)
		if err != nil {
			return nil, fmt.Errorf("lesson %d: %w", i, err)
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}
