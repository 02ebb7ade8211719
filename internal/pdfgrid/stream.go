package pdfgrid

import (
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
)

// streamGrid строит таблицу без линий разметки: каждая строка текста - строка таблицы,
// столбцы привязаны к фрагментам строки заголовка (первой строки с днём недели).
func streamGrid(lines []line) timetable.Grid {
	anchors := columnAnchors(lines)

	grid := make(timetable.Grid, 0, len(lines))
	for _, l := range lines {
		row := make([]string, len(anchors))
		for _, f := range l.fragments {
			col := anchorColumn(anchors, f.x, f.size)
			if row[col] != "" {
				row[col] += " "
			}
			row[col] += f.text
		}
		grid = append(grid, row)
	}
	return grid
}

func columnAnchors(lines []line) []float64 {
	header := -1
	for i, l := range lines {
		if _, ok := model.WeekdayByName(l.fragments[0].text); ok && len(l.fragments) > 1 {
			header = i
			break
		}
	}
	if header < 0 {
		// без заголовка берём самую широкую строку
		header = 0
		for i, l := range lines {
			if len(l.fragments) > len(lines[header].fragments) {
				header = i
			}
		}
	}

	anchors := make([]float64, 0, len(lines[header].fragments))
	for _, f := range lines[header].fragments {
		anchors = append(anchors, f.x)
	}
	return anchors
}

// anchorColumn - последний столбец, чей левый край не правее фрагмента
func anchorColumn(anchors []float64, x, size float64) int {
	col := 0
	for i, a := range anchors {
		if a <= x+size*0.5 {
			col = i
		}
	}
	return col
}
