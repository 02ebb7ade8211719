package exporter

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1500
	imageHeight      = 1000
	headerHeight     = 110
	leftLabelsWidth  = 80
	dayPaddingX      = 6
	minLessonHeight  = 24.0
	lessonRadius     = 6.0
	shadowOffset     = 3.0
	studyDaysInWeek  = 6
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultStartHour = 9
	defaultEndHour   = 18
)

// Константы шрифтов
const (
	titleFontSize     = 28.0
	dayFontSize       = 22.0
	hourLabelFontSize = 16.0
	lessonTimeSize    = 15.0
	lessonTextSize    = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 214, 102, 110}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	lessonDefaultColor    = color.RGBA{164, 198, 232, 230}
	lessonUpcomingColor   = color.RGBA{133, 193, 85, 220}
	lessonInProgressColor = color.RGBA{255, 206, 84, 230}
	lessonCompletedColor  = color.RGBA{200, 200, 200, 220}
	lessonTextColor       = color.RGBA{20, 24, 28, 230}
	lessonShadowColor     = color.RGBA{0, 0, 0, 20}
)

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage - что нарисовать
type WeekImage struct {
	Group     string
	Odd       bool
	WeekStart time.Time // понедельник отображаемой недели
	Week      model.Week
	Now       time.Time // подсветка сегодняшнего дня и текущего времени
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

func parseFonts() {
	parsedFonts = make(map[FontStyle]*opentype.Font)
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		parsedFonts[FontStyleDefault] = f
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		parsedFonts[FontStyleBold] = f
	}
}

// loadFont ставит шрифт Go нужного стиля, basicfont - если шрифт не разобрался
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(parseFonts)

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// RenderWeekImage рисует PNG с парами недели по дням
func RenderWeekImage(w WeekImage) ([]byte, error) {
	hours := calculateHourRange(w.Week)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth) / studyDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	today := -1
	if !w.Now.IsZero() && !w.WeekStart.IsZero() {
		diff := int(normalizeToDay(w.Now).Sub(normalizeToDay(w.WeekStart)).Hours() / 24)
		if diff >= 0 && diff < studyDaysInWeek {
			today = diff
		}
	}

	drawHeader(dc, w)
	drawHourLabels(dc, hours, cellHeight)
	for i, d := range model.StudyDays {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, i == today)
		drawDayHeader(dc, d, w.WeekStart, i, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, l := range w.Week[d] {
			drawLesson(dc, l, x, y, dayWidth, hours, cellHeight, i == today, w.Now)
		}
	}
	if today >= 0 {
		drawCurrentTimeLine(dc, w.Now, hours, cellHeight, dayWidth)
	}

	return encodeImage(dc)
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calculateHourRange определяет диапазон часов по парам недели
func calculateHourRange(week model.Week) hourRange {
	minHour, maxHour := 24, 0

	for _, d := range model.StudyDays {
		for _, l := range week[d] {
			if formatting.LessonDescription(l) == "" {
				continue
			}
			start, err := formatting.ParseClock(l.StartTime)
			if err != nil {
				continue
			}
			end, err := formatting.ParseClock(l.EndTime)
			if err != nil {
				continue
			}
			if h := start / 60; h < minHour {
				minHour = h
			}
			endH := end / 60
			if end%60 > 0 {
				endH++
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour, maxHour = defaultStartHour, defaultEndHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 24)

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует группу, чётность и даты недели
func drawHeader(dc *gg.Context, w WeekImage) {
	parity := "чётная неделя"
	if w.Odd {
		parity = "нечётная неделя"
	}
	title := fmt.Sprintf("Группа %s, %s", w.Group, parity)
	if !w.WeekStart.IsZero() {
		end := w.WeekStart.AddDate(0, 0, studyDaysInWeek-1)
		title += fmt.Sprintf(" (%s - %s)", formatting.FormatDayMonth(w.WeekStart), formatting.FormatDayMonth(end))
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/3, 0, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, d model.Weekday, weekStart time.Time, dayIndex int, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(d.String(), x+float64(dayWidth)/2, y, 0.5, -0.2)
	if !weekStart.IsZero() {
		date := weekStart.AddDate(0, 0, dayIndex).Format("02.01")
		dc.DrawStringAnchored(date, x+float64(dayWidth)/2, y, 0.5, -1.4)
	}
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// lessonColor - цвет пары; в сегодняшнем дне зависит от статуса
func lessonColor(l model.Lesson, isToday bool, now time.Time) color.RGBA {
	if !isToday {
		return lessonDefaultColor
	}
	switch formatting.StatusAt(l.StartTime, l.EndTime, now) {
	case formatting.LessonStatusUpcoming:
		return lessonUpcomingColor
	case formatting.LessonStatusInProgress:
		return lessonInProgressColor
	case formatting.LessonStatusCompleted:
		return lessonCompletedColor
	default:
		return lessonDefaultColor
	}
}

// drawLesson рисует одну пару
func drawLesson(dc *gg.Context, l model.Lesson, x, y float64, dayWidth int, hours hourRange, cellHeight float64, isToday bool, now time.Time) {
	desc := formatting.LessonDescription(l)
	if desc == "" {
		return
	}
	start, err := formatting.ParseClock(l.StartTime)
	if err != nil {
		return
	}
	end, err := formatting.ParseClock(l.EndTime)
	if err != nil {
		return
	}

	startHour := float64(start) / 60
	endHour := float64(end) / 60
	lessonY := y + (startHour-float64(hours.start))*cellHeight
	lessonHeight := max((endHour-startHour)*cellHeight, minLessonHeight)
	lessonWidth := float64(dayWidth) - float64(dayPaddingX*2)
	fillColor := lessonColor(l, isToday, now)

	// Тень
	dc.SetColor(lessonShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, lessonY+2+shadowOffset, lessonWidth, lessonHeight-4, lessonRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+dayPaddingX, lessonY+2, lessonWidth, lessonHeight-4, lessonRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, lessonY+2, lessonWidth, lessonHeight-4, lessonRadius)
	dc.Stroke()

	txtX := x + dayPaddingX + 6
	txtY := lessonY + 6

	loadFont(dc, lessonTimeSize, FontStyleBold)
	dc.SetColor(lessonTextColor)
	dc.DrawStringAnchored(l.StartTime+"-"+l.EndTime, txtX, txtY, 0, 1)

	// описание переносится по словам и обрезается по высоте пары
	loadFont(dc, lessonTextSize, FontStyleDefault)
	lineHeight := dc.FontHeight() * 1.2
	bottom := lessonY + lessonHeight - 4
	lineY := txtY + lessonTimeSize + 4
	for _, line := range dc.WordWrap(desc, lessonWidth-12) {
		if lineY+lineHeight > bottom {
			break
		}
		dc.DrawStringAnchored(line, txtX, lineY, 0, 1)
		lineY += lineHeight
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	currentTimeY := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), currentTimeY, float64(leftLabelsWidth+studyDaysInWeek*dayWidth), currentTimeY)
	dc.Stroke()
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
