package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonEncode(t *testing.T) {
	assert.Equal(t, "0 09.00 10.35 'Матанализ'", NewSingle("09.00", "10.35", "Матанализ").Encode())
	assert.Equal(t, "1 09.00 10.35 'A' 'B'", NewDouble("09.00", "10.35", "A", "B").Encode())
	assert.Equal(t, "0 09.00 10.35 ''", NewSingle("09.00", "10.35", "").Encode())
	assert.Equal(t, `0 09.00 10.35 'it'\''s'`, NewSingle("09.00", "10.35", "it's").Encode())
}

func TestNewDoubleCollapsesEqualDescriptions(t *testing.T) {
	l := NewDouble("10.45", "12.20", "Физика", "Физика")

	assert.Equal(t, LessonSingle, l.Kind)
	assert.Equal(t, "Физика", l.Description)
	assert.False(t, l.IsDouble())
}

func TestLessonRoundTrip(t *testing.T) {
	descriptions := []string{
		"",
		"Матанализ",
		"Лекция\nпроф. Иванов   П-8",
		"it's",
		"''",
		`"quoted"`,
		`back\slash`,
		"$HOME `cmd` ; rm -rf",
		"  leading and trailing  ",
		"tab\there",
	}

	for _, d := range descriptions {
		single := NewSingle("08.45", "10.20", d)
		got, err := DecodeLesson(single.Encode())
		require.NoError(t, err, d)
		assert.Equal(t, single, got)

		double := NewDouble("08.45", "10.20", d, d+" (чёт)")
		got, err = DecodeLesson(double.Encode())
		require.NoError(t, err, d)
		assert.Equal(t, double, got)
	}
}

func TestDecodeLessonErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown kind", "2 09.00 10.35 'x'"},
		{"single with extra token", "0 09.00 10.35 'a' 'b'"},
		{"single missing description", "0 09.00 10.35"},
		{"double missing even", "1 09.00 10.35 'a'"},
		{"unterminated quote", "0 09.00 10.35 'abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLesson(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecode))

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.input, decodeErr.Input)
		})
	}
}

func TestDecodeLessonsStopsOnFirstError(t *testing.T) {
	_, err := DecodeLessons([]string{"0 09.00 10.35 'ok'", "garbage"})
	assert.ErrorIs(t, err, ErrDecode)

	lessons, err := DecodeLessons(EncodeLessons([]Lesson{
		NewSingle("09.00", "10.35", "a"),
		NewDouble("10.45", "12.20", "b", "c"),
	}))
	require.NoError(t, err)
	assert.Len(t, lessons, 2)
	assert.True(t, lessons[1].IsDouble())
}
