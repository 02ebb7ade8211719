package pdfgrid

import (
	"testing"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyph(s string, x, y float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: 5 * float64(len([]rune(s))), FontSize: 10}
}

func vline(x, fromY, toY float64) pdf.Rect {
	return pdf.Rect{Min: pdf.Point{X: x - 0.5, Y: fromY}, Max: pdf.Point{X: x + 0.5, Y: toY}}
}

func hline(y, fromX, toX float64) pdf.Rect {
	return pdf.Rect{Min: pdf.Point{X: fromX, Y: y - 0.5}, Max: pdf.Point{X: toX, Y: y + 0.5}}
}

func TestMergeGlyphs(t *testing.T) {
	lines := buildLines([]pdf.Text{
		glyph("a", 0, 100), glyph("b", 5, 100),
		glyph("c", 13, 100), glyph("d", 18, 100),
		glyph("e", 60, 100),
		glyph("x", 0, 80),
	})

	require.Len(t, lines, 2)
	require.Len(t, lines[0].fragments, 2)
	assert.Equal(t, "ab cd", lines[0].fragments[0].text)
	assert.Equal(t, "e", lines[0].fragments[1].text)
	assert.Equal(t, "x", lines[1].fragments[0].text)
}

func TestCleanTextNormalizesNFC(t *testing.T) {
	assert.Equal(t, "й", cleanText("й"))
	assert.Equal(t, "a b", cleanText("  a \n b "))
}

func TestLatticeGrid(t *testing.T) {
	texts := []pdf.Text{
		glyph("Понедельник", 5, 185), glyph("101", 105, 185),
		glyph("09.00-10.35", 5, 165), glyph("A", 105, 165),
	}
	rects := []pdf.Rect{
		vline(0, 160, 200), vline(100, 160, 200), vline(200, 160, 200),
		hline(200, 0, 200), hline(180, 0, 200), hline(160, 0, 200),
	}

	grid := PageGrid(texts, rects)

	assert.Equal(t, timetable.Grid{
		{"Понедельник", "101"},
		{"09.00-10.35", "A"},
	}, grid)
}

func TestLatticeGridCopiesMergedCells(t *testing.T) {
	texts := []pdf.Text{
		glyph("Понедельник", 5, 185), glyph("101", 105, 185), glyph("102", 205, 185),
		glyph("09.00-10.35", 5, 165), glyph("Лекция", 105, 165),
	}
	rects := []pdf.Rect{
		vline(0, 160, 200), vline(100, 160, 200), vline(200, 180, 200), vline(300, 160, 200),
		hline(200, 0, 300), hline(180, 0, 300), hline(160, 0, 300),
	}

	grid := PageGrid(texts, rects)

	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Понедельник", "101", "102"}, grid[0])
	assert.Equal(t, []string{"09.00-10.35", "Лекция", "Лекция"}, grid[1])
}

func TestLatticeGridMultilineCell(t *testing.T) {
	texts := []pdf.Text{
		glyph("Матанализ", 5, 190), glyph("П-8", 5, 170),
	}
	rects := []pdf.Rect{
		{Min: pdf.Point{X: 0, Y: 160}, Max: pdf.Point{X: 100, Y: 200}},
	}

	grid := PageGrid(texts, rects)

	assert.Equal(t, timetable.Grid{{"Матанализ\nП-8"}}, grid)
}

func TestStreamGrid(t *testing.T) {
	texts := []pdf.Text{
		glyph("Расписание", 0, 300),
		glyph("Понедельник", 0, 280), glyph("101", 100, 280), glyph("102", 200, 280),
		glyph("09.00-10.35", 0, 260), glyph("A", 100, 260), glyph("B", 200, 260),
	}

	grid := PageGrid(texts, nil)

	assert.Equal(t, timetable.Grid{
		{"Расписание", "", ""},
		{"Понедельник", "101", "102"},
		{"09.00-10.35", "A", "B"},
	}, grid)
}

func TestPageGridEmpty(t *testing.T) {
	assert.Nil(t, PageGrid(nil, nil))
}

func TestReadBytesRejectsGarbage(t *testing.T) {
	_, err := ReadBytes([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
