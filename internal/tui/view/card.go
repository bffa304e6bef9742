package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardModel contains the fields of the current-schedule card.
type CardModel struct {
	Width         int
	HasCurrent    bool
	Title         string
	StartTime     string
	EndTime       string
	CategoryLabel string
	Progress      float64 // 0..1
	Remaining     string
	FreeLabel     string
	NextLine      string
}

// CardStyles groups styles for the current-schedule card.
type CardStyles struct {
	CardStyle          lipgloss.Style
	TitleStyle         lipgloss.Style
	MetaStyle          lipgloss.Style
	ChipStyle          lipgloss.Style
	CategoryChipStyle  lipgloss.Style
	NowBadgeStyle      lipgloss.Style
	ProgressFullStyle  lipgloss.Style
	ProgressEmptyStyle lipgloss.Style
}

// RenderCard renders the card showing what is on right now.
func RenderCard(model CardModel, styles CardStyles) string {
	frameW, _ := styles.CardStyle.GetFrameSize()
	inner := max(model.Width-frameW, 10)
	sep := styles.MetaStyle.Render(" ")

	var lines []string
	if model.HasCurrent {
		lines = append(lines, styles.NowBadgeStyle.Render("NOW")+sep+styles.TitleStyle.Render(model.Title))
		lines = append(lines, styles.ChipStyle.Render(model.StartTime)+
			styles.MetaStyle.Render(" → ")+
			styles.ChipStyle.Render(model.EndTime)+sep+
			styles.CategoryChipStyle.Render(model.CategoryLabel))

		label := fmt.Sprintf(" %d%% · %s left", int(math.Round(model.Progress*100)), model.Remaining)
		barW := max(inner-lipgloss.Width(label), 4)
		lines = append(lines, ProgressBar(model.Progress, barW, styles.ProgressFullStyle, styles.ProgressEmptyStyle)+
			styles.MetaStyle.Render(label))
	} else {
		lines = append(lines, styles.MetaStyle.Render(model.FreeLabel))
	}
	if model.NextLine != "" {
		lines = append(lines, styles.MetaStyle.Render(model.NextLine))
	}

	return styles.CardStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

// ProgressBar renders a horizontal bar of width cells filled to progress.
func ProgressBar(progress float64, width int, full, empty lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	progress = math.Max(0, math.Min(1, progress))
	filled := int(math.Round(progress * float64(width)))
	return full.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", width-filled))
}

// FreeTimeLabel is shown when no schedule covers the current time.
func FreeTimeLabel(lang string) string {
	if lang == "ko" {
		return "현재 일정 없음 · 자유 시간"
	}
	return "No schedule right now · free time"
}
