package dial

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Cell glyphs.
const (
	GlyphArc     = '█'
	GlyphCurrent = '▓'
	GlyphRim     = '·'
	GlyphHour    = '●'
	GlyphMinute  = '•'
	GlyphCenter  = '◉'
)

// Cell is one terminal character of the raster.
type Cell struct {
	Rune       rune
	Color      string // hex, empty for the default foreground
	ScheduleID string
	Hand       bool
}

// Grid is a rendered dial, rows top to bottom.
type Grid [][]Cell

// RasterOptions configures the terminal dial.
type RasterOptions struct {
	// Radius in rows. Columns are doubled to keep the dial round.
	Radius    int
	Now       time.Time // hands are drawn when non-zero
	CurrentID string
}

// ringWidth is the thickness of the arc band in rows.
func ringWidth(radius int) float64 {
	return math.Max(1, float64(radius)/5)
}

// Rasterize samples the dial on a character grid. Each cell on the ring is
// mapped back to a time with clock.AngleToTime and painted with the
// schedule covering that minute.
func Rasterize(schedules []schedule.Schedule, opts RasterOptions) Grid {
	r := max(opts.Radius, 4)
	rows, cols := 2*r+1, 4*r+1
	grid := make(Grid, rows)
	for y := range grid {
		grid[y] = make([]Cell, cols)
		for x := range grid[y] {
			grid[y][x] = Cell{Rune: ' '}
		}
	}

	outer := float64(r) + 0.5
	inner := outer - ringWidth(r)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dx := float64(x-2*r) / 2
			dy := float64(y - r)
			dist := math.Hypot(dx, dy)
			if dist > outer || dist < inner {
				continue
			}
			at := clock.AngleToTime(math.Atan2(dy, dx) * 180 / math.Pi)
			cell := Cell{Rune: GlyphRim}
			if s, ok := schedule.Current(schedules, at); ok {
				cell = Cell{Rune: GlyphArc, Color: colorOf(s), ScheduleID: s.ID}
				if s.ID == opts.CurrentID {
					cell.Rune = GlyphCurrent
				}
			}
			grid[y][x] = cell
		}
	}

	labelRadius := inner - 1.5
	for _, m := range HourMarks(0, 0, labelRadius) {
		if !m.Major {
			continue
		}
		p := PointAt(0, 0, labelRadius, float64(m.Hour)/TotalHours*360+clock.AngleOffset)
		grid.put(int(math.Round(p.Y))+r, int(math.Round(p.X*2))+2*r, strconv.Itoa(m.Hour))
	}

	if !opts.Now.IsZero() {
		h := HandsAt(opts.Now)
		grid.hand(r, h.Minute, (inner-1)*0.8, GlyphMinute)
		grid.hand(r, h.Hour, (inner-1)*0.6, GlyphHour)
		grid[r][2*r] = Cell{Rune: GlyphCenter, Hand: true}
	}
	return grid
}

func colorOf(s schedule.Schedule) string {
	if s.Color != "" {
		return s.Color
	}
	return s.Category.Color()
}

// put writes text centered on (row, col).
func (g Grid) put(row, col int, text string) {
	if row < 0 || row >= len(g) {
		return
	}
	start := col - len(text)/2
	for i, ch := range text {
		c := start + i
		if c >= 0 && c < len(g[row]) {
			g[row][c] = Cell{Rune: ch}
		}
	}
}

// hand draws a line of glyphs from the center of a radius-r grid.
func (g Grid) hand(r int, angle, length float64, glyph rune) {
	for d := 1.0; d <= length; d += 0.5 {
		p := PointAt(0, 0, d, angle)
		row := int(math.Round(p.Y)) + r
		col := int(math.Round(p.X*2)) + 2*r
		if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
			continue
		}
		g[row][col] = Cell{Rune: glyph, Hand: true}
	}
}

// Lines returns the grid as plain text with trailing spaces trimmed.
func (g Grid) Lines() []string {
	lines := make([]string, len(g))
	for y, row := range g {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Rune)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// Styles colors raster cells.
type Styles struct {
	Rim   lipgloss.Style
	Label lipgloss.Style
	Hand  lipgloss.Style
}

// DefaultStyles returns muted rim and label colors.
func DefaultStyles() Styles {
	return Styles{
		Rim:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Bold(true),
		Hand:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")),
	}
}

// Render paints the grid with lipgloss, batching runs of equal style.
func (g Grid) Render(st Styles) string {
	var out strings.Builder
	for y, row := range g {
		if y > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == nil {
				out.WriteString(run.String())
			} else {
				out.WriteString(runStyle.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			style := st.styleFor(c)
			if !sameStyle(style, runStyle) {
				flush()
				runStyle = style
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return out.String()
}

func (st Styles) styleFor(c Cell) *lipgloss.Style {
	var s lipgloss.Style
	switch {
	case c.Hand:
		s = st.Hand
	case c.Color != "":
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	case c.Rune == GlyphRim:
		s = st.Rim
	case c.Rune != ' ':
		s = st.Label
	default:
		return nil
	}
	return &s
}

func sameStyle(a, b *lipgloss.Style) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.GetForeground() == b.GetForeground() && a.GetBold() == b.GetBold()
}
