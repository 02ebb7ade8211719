package pdfgrid

import (
	"math"
	"sort"
	"strings"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/ledongthuc/pdf"
)

const (
	// толщина, до которой прямоугольник считается линией
	rulingThickness = 2.0
	// минимальная длина линии разметки
	rulingMinLength = 4.0
	// допуск совпадения координат линий
	coordTolerance = 2.0
)

type segment struct {
	at       float64 // x для вертикали, y для горизонтали
	from, to float64
}

func (s segment) covers(v float64) bool {
	return v >= s.from-coordTolerance && v <= s.to+coordTolerance
}

type rulings struct {
	vertical   []segment
	horizontal []segment
}

// collectRulings превращает тонкие прямоугольники в линии, а рамки ячеек - в четыре линии
func collectRulings(rects []pdf.Rect) rulings {
	var r rulings
	for _, rect := range rects {
		minX, maxX := math.Min(rect.Min.X, rect.Max.X), math.Max(rect.Min.X, rect.Max.X)
		minY, maxY := math.Min(rect.Min.Y, rect.Max.Y), math.Max(rect.Min.Y, rect.Max.Y)
		w, h := maxX-minX, maxY-minY

		switch {
		case w <= rulingThickness && h >= rulingMinLength:
			r.vertical = append(r.vertical, segment{at: (minX + maxX) / 2, from: minY, to: maxY})
		case h <= rulingThickness && w >= rulingMinLength:
			r.horizontal = append(r.horizontal, segment{at: (minY + maxY) / 2, from: minX, to: maxX})
		case w >= rulingMinLength && h >= rulingMinLength:
			r.vertical = append(r.vertical,
				segment{at: minX, from: minY, to: maxY},
				segment{at: maxX, from: minY, to: maxY})
			r.horizontal = append(r.horizontal,
				segment{at: minY, from: minX, to: maxX},
				segment{at: maxY, from: minX, to: maxX})
		}
	}
	return r
}

// uniqueCoords возвращает отсортированные координаты линий без близких дублей
func uniqueCoords(segments []segment, descending bool) []float64 {
	coords := make([]float64, 0, len(segments))
	for _, s := range segments {
		coords = append(coords, s.at)
	}
	sort.Float64s(coords)

	var unique []float64
	for _, c := range coords {
		if n := len(unique); n > 0 && c-unique[n-1] <= coordTolerance {
			continue
		}
		unique = append(unique, c)
	}

	if descending {
		for i, j := 0, len(unique)-1; i < j; i, j = i+1, j-1 {
			unique[i], unique[j] = unique[j], unique[i]
		}
	}
	return unique
}

func hasSegment(segments []segment, at, along float64) bool {
	for _, s := range segments {
		if math.Abs(s.at-at) <= coordTolerance && s.covers(along) {
			return true
		}
	}
	return false
}

// unionFind объединяет ячейки, между которыми нет линии
type unionFind []int

func newUnionFind(n int) unionFind {
	u := make(unionFind, n)
	for i := range u {
		u[i] = i
	}
	return u
}

func (u unionFind) find(i int) int {
	for u[i] != i {
		u[i] = u[u[i]]
		i = u[i]
	}
	return i
}

func (u unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u[rb] = ra
	} else {
		u[ra] = rb
	}
}

// latticeGrid строит таблицу по линиям разметки.
// Текст объединённой ячейки копируется во все ячейки, которые она покрывает.
func latticeGrid(lines []line, rects []pdf.Rect) (timetable.Grid, bool) {
	r := collectRulings(rects)
	xs := uniqueCoords(r.vertical, false)
	ys := uniqueCoords(r.horizontal, true)
	if len(xs) < 2 || len(ys) < 2 {
		return nil, false
	}

	rows, cols := len(ys)-1, len(xs)-1
	index := func(row, col int) int { return row*cols + col }

	uf := newUnionFind(rows * cols)
	for row := 0; row < rows; row++ {
		midY := (ys[row] + ys[row+1]) / 2
		for col := 0; col < cols; col++ {
			midX := (xs[col] + xs[col+1]) / 2
			if col+1 < cols && !hasSegment(r.vertical, xs[col+1], midY) {
				uf.union(index(row, col), index(row, col+1))
			}
			if row+1 < rows && !hasSegment(r.horizontal, ys[row+1], midX) {
				uf.union(index(row, col), index(row+1, col))
			}
		}
	}

	// текст по регионам, строки сверху вниз
	type part struct {
		lineIdx int
		text    string
	}
	regions := make(map[int][]part)
	placed := 0
	for li, l := range lines {
		for _, f := range l.fragments {
			x := f.x + math.Min(f.w, f.size)/2
			y := f.y + f.size*0.3
			col := locate(xs, x, false)
			row := locate(ys, y, true)
			if col < 0 || row < 0 {
				continue
			}
			root := uf.find(index(row, col))
			regions[root] = append(regions[root], part{lineIdx: li, text: f.text})
			placed++
		}
	}
	if placed == 0 {
		return nil, false
	}

	texts := make(map[int]string, len(regions))
	for root, parts := range regions {
		var (
			b    strings.Builder
			prev = -1
		)
		for _, p := range parts {
			switch {
			case prev == -1:
			case p.lineIdx == prev:
				b.WriteByte(' ')
			default:
				b.WriteByte('\n')
			}
			b.WriteString(p.text)
			prev = p.lineIdx
		}
		texts[root] = b.String()
	}

	grid := make(timetable.Grid, rows)
	for row := 0; row < rows; row++ {
		grid[row] = make([]string, cols)
		for col := 0; col < cols; col++ {
			grid[row][col] = texts[uf.find(index(row, col))]
		}
	}
	return grid, true
}

// locate находит интервал [bounds[i], bounds[i+1]), содержащий v
func locate(bounds []float64, v float64, descending bool) int {
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]
		if descending {
			lo, hi = hi, lo
		}
		if v >= lo && v < hi {
			return i
		}
	}
	return -1
}
