package pdfgrid

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

const (
	// доли кегля
	lineTolerance = 0.5
	spaceGap      = 0.2
	fragmentGap   = 1.5

	defaultFontSize = 10.0
)

// fragment - кусок текста одной строки без больших разрывов
type fragment struct {
	x, y, w, size float64
	text          string
}

func (f fragment) end() float64 {
	return f.x + f.w
}

// line - фрагменты с общей базовой линией, слева направо
type line struct {
	y         float64
	fragments []fragment
}

func fontSize(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return defaultFontSize
	}
	return t.FontSize
}

// glyphWidth - ширина глифа; если библиотека её не знает, оцениваем по кеглю
func glyphWidth(t pdf.Text) float64 {
	if t.W > 0 {
		return t.W
	}
	return fontSize(t) * 0.5 * float64(utf8.RuneCountInString(t.S))
}

// buildLines группирует глифы в строки (сверху вниз) и фрагменты
func buildLines(texts []pdf.Text) []line {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		glyphs = append(glyphs, t)
	}
	if len(glyphs) == 0 {
		return nil
	}

	// координата Y в PDF растёт вверх
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var rows [][]pdf.Text
	for _, g := range glyphs {
		n := len(rows)
		if n > 0 && math.Abs(rows[n-1][0].Y-g.Y) <= fontSize(g)*lineTolerance {
			rows[n-1] = append(rows[n-1], g)
			continue
		}
		rows = append(rows, []pdf.Text{g})
	}

	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		l := line{y: row[0].Y, fragments: mergeGlyphs(row)}
		if len(l.fragments) > 0 {
			lines = append(lines, l)
		}
	}
	return lines
}

func mergeGlyphs(row []pdf.Text) []fragment {
	var (
		fragments []fragment
		current   *fragment
		b         strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		current.text = cleanText(b.String())
		if current.text != "" {
			fragments = append(fragments, *current)
		}
		current = nil
		b.Reset()
	}

	for _, g := range row {
		size := fontSize(g)
		if current != nil {
			gap := g.X - current.end()
			if gap > size*fragmentGap {
				flush()
			} else if gap > size*spaceGap {
				b.WriteByte(' ')
			}
		}
		if current == nil {
			current = &fragment{x: g.X, y: g.Y, size: size}
		}
		b.WriteString(g.S)
		if e := g.X + glyphWidth(g); e > current.end() {
			current.w = e - current.x
		}
	}
	flush()

	return fragments
}

// cleanText нормализует текст ячейки в NFC и убирает лишние пробелы
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
