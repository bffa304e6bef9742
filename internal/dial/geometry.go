// Package dial computes the geometry of the 24-hour dial and renders it as
// SVG or as a grid of terminal cells.
package dial

import (
	"fmt"
	"math"
	"time"

	"github.com/javiermolinar/clockplan/internal/clock"
)

// Dial dimensions in SVG user units.
const (
	Radius         = 140.0
	StrokeWidth    = 20.0
	CenterRadius   = 50.0
	HourMarkLength = 10.0
	TotalHours     = 24
	DefaultSize    = 350.0
)

// Hand lengths relative to Radius.
const (
	HourHandRatio   = 0.7
	MinuteHandRatio = 1.15
	SecondHandRatio = 1.05
)

// Point is a position in y-down screen coordinates.
type Point struct {
	X, Y float64
}

// PointAt returns the point at distance r from (cx, cy) along angle degrees.
func PointAt(cx, cy, r, angle float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: cx + r*math.Cos(rad),
		Y: cy + r*math.Sin(rad),
	}
}

// Hands holds the angle in degrees of each clock hand. The hour hand turns
// once per day; minute and second hands turn once per hour and minute.
type Hands struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandsAt returns the hand angles for t.
func HandsAt(t time.Time) Hands {
	h := float64(t.Hour())
	m := float64(t.Minute())
	s := float64(t.Second())
	ms := float64(t.Nanosecond()/int(time.Millisecond)) / 1000

	return Hands{
		Hour:   ((h+m/60+s/3600)/TotalHours)*360 + clock.AngleOffset,
		Minute: ((m+s/60)/60)*360 + clock.AngleOffset,
		Second: ((s+ms)/60)*360 + clock.AngleOffset,
	}
}

// LargeArc reports whether the clockwise sweep from start to end exceeds
// half the dial.
func LargeArc(startAngle, endAngle float64) bool {
	diff := endAngle - startAngle
	if diff < 0 {
		diff += 360
	}
	return diff > 180
}

// ArcPath returns the SVG path drawing a clockwise arc of radius r around
// (cx, cy) from start to end, both "HH:MM".
func ArcPath(cx, cy, r float64, start, end string) string {
	startAngle := clock.TimeToAngle(start)
	endAngle := clock.TimeToAngle(end)
	p1 := PointAt(cx, cy, r, startAngle)
	p2 := PointAt(cx, cy, r, endAngle)

	large := 0
	if LargeArc(startAngle, endAngle) {
		large = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s",
		num(p1.X), num(p1.Y), num(r), num(r), large, num(p2.X), num(p2.Y))
}

// HourMark is one tick on the dial rim. Every sixth hour is a major mark
// with a label.
type HourMark struct {
	Hour  int
	Major bool
	Inner Point
	Outer Point
	Label Point
}

// HourMarks returns the 24 rim ticks for a dial of radius r at (cx, cy).
func HourMarks(cx, cy, r float64) []HourMark {
	marks := make([]HourMark, 0, TotalHours)
	for i := range TotalHours {
		angle := float64(i)/TotalHours*360 + clock.AngleOffset
		major := i%6 == 0
		length := HourMarkLength
		if major {
			length *= 1.5
		}
		marks = append(marks, HourMark{
			Hour:  i,
			Major: major,
			Inner: PointAt(cx, cy, r-length, angle),
			Outer: PointAt(cx, cy, r, angle),
			Label: PointAt(cx, cy, r-length-20, angle),
		})
	}
	return marks
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return fmt.Sprintf("%g", v)
}
