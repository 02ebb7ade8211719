package timetable

import "strings"

// Grid - таблица одной страницы: строки × столбцы.
// Столбец 0 содержит день недели или интервал времени, остальные - группы.
type Grid [][]string

// Cell возвращает содержимое ячейки без окружающих пробелов.
// Для отсутствующих ячеек (неровные строки) возвращается пустая строка.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

// dropFirstRow убирает заголовок страницы
func (g Grid) dropFirstRow() Grid {
	if len(g) == 0 {
		return g
	}
	return g[1:]
}

// dropColumn убирает столбец col из всех строк, которые до него доходят
func (g Grid) dropColumn(col int) Grid {
	if col < 0 {
		return g
	}
	trimmed := make(Grid, len(g))
	for i, row := range g {
		if len(row) > col {
			cut := make([]string, 0, len(row)-1)
			cut = append(cut, row[:col]...)
			row = append(cut, row[col+1:]...)
		}
		trimmed[i] = row
	}
	return trimmed
}
