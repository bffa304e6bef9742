package dial

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// SVGOptions configures SVG output.
type SVGOptions struct {
	Size      float64   // width and height; DefaultSize when zero
	Now       time.Time // hands are drawn when non-zero
	CurrentID string    // highlighted schedule
	Dark      bool
}

type svgPalette struct {
	background, rim, center, centerStroke, mark, label, hourHand, minuteHand, secondHand string
}

var (
	lightSVG = svgPalette{"#FFFFFF", "#E5E7EB", "#F3F4F6", "#D1D5DB", "#9CA3AF", "#374151", "#1F2937", "#4B5563", "#EF4444"}
	darkSVG  = svgPalette{"#111827", "#374151", "#1F2937", "#4B5563", "#6B7280", "#E5E7EB", "#F9FAFB", "#D1D5DB", "#EF4444"}
)

// WriteSVG draws the dial with one arc per schedule.
func WriteSVG(w io.Writer, schedules []schedule.Schedule, opts SVGOptions) error {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	pal := lightSVG
	if opts.Dark {
		pal = darkSVG
	}
	c := size / 2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(size), num(size), num(size), num(size))
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.background)
	fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		num(c), num(c), num(Radius), pal.rim)
	fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		num(c), num(c), num(CenterRadius), pal.center, pal.centerStroke)

	for _, m := range HourMarks(c, c, Radius) {
		width := 1
		if m.Major {
			width = 2
		}
		fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			num(m.Inner.X), num(m.Inner.Y), num(m.Outer.X), num(m.Outer.Y), pal.mark, width)
		if m.Major {
			fmt.Fprintf(&b, `  <text x="%s" y="%s" font-size="14" font-weight="600" fill="%s" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
				num(m.Label.X), num(m.Label.Y), pal.label, m.Hour)
		}
	}

	for _, s := range schedule.SortByTime(schedules) {
		if s.Duration() == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = s.Category.Color()
		}
		path := ArcPath(c, c, Radius, s.StartTime, s.EndTime)
		width, opacity := StrokeWidth, "0.9"
		if s.ID == opts.CurrentID {
			width, opacity = StrokeWidth*1.3, "1"
			fmt.Fprintf(&b, `  <path d="%s" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round" opacity="0.3"/>`+"\n",
				path, color, num(StrokeWidth*1.6))
		}
		fmt.Fprintf(&b, `  <path d="%s" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round" opacity="%s"><title>%s %s-%s</title></path>`+"\n",
			path, color, num(width), opacity, escape(s.Title), s.StartTime, s.EndTime)
	}

	if !opts.Now.IsZero() {
		writeHands(&b, c, HandsAt(opts.Now), pal)
		fmt.Fprintf(&b, `  <text x="%s" y="%s" font-size="16" font-weight="700" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			num(c), num(c+CenterRadius/2), pal.label, clock.CurrentTime(func() time.Time { return opts.Now })[:5])
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeHands(b *strings.Builder, c float64, h Hands, pal svgPalette) {
	line := func(angle, length float64, color string, width float64) {
		end := PointAt(c, c, Radius*length, angle)
		fmt.Fprintf(b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
			num(c), num(c), num(end.X), num(end.Y), color, num(width))
	}
	line(h.Hour, HourHandRatio, pal.hourHand, 8)
	line(h.Minute, MinuteHandRatio, pal.minuteHand, 3)
	line(h.Second, SecondHandRatio, pal.secondHand, 1.5)
	fmt.Fprintf(b, `  <circle cx="%s" cy="%s" r="10" fill="%s" stroke="#FFFFFF" stroke-width="3"/>`+"\n",
		num(c), num(c), pal.hourHand)
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return svgEscaper.Replace(s)
}
