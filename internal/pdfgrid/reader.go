// Package pdfgrid превращает страницы PDF с расписанием в таблицы строк.
package pdfgrid

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/ledongthuc/pdf"
)

// ReadFile открывает PDF и возвращает по таблице на каждую страницу с текстом
func ReadFile(path string) ([]timetable.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	return Read(f, info.Size())
}

// ReadBytes разбирает PDF из памяти
func ReadBytes(data []byte) ([]timetable.Grid, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read разбирает PDF. Паника библиотеки на испорченном файле возвращается как ошибка.
func Read(r io.ReaderAt, size int64) (grids []timetable.Grid, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			grids = nil
			err = fmt.Errorf("read pdf: malformed document: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		grid := PageGrid(content.Text, content.Rect)
		if len(grid) == 0 {
			continue
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

// PageGrid строит таблицу страницы по глифам и прямоугольникам.
// Если на странице есть линии разметки, ячейки берутся из них,
// иначе столбцы выравниваются по строке с днём недели.
func PageGrid(texts []pdf.Text, rects []pdf.Rect) timetable.Grid {
	lines := buildLines(texts)
	if len(lines) == 0 {
		return nil
	}

	if grid, ok := latticeGrid(lines, rects); ok {
		return grid
	}
	return streamGrid(lines)
}
