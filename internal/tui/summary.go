package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws rows as a two-column table between rules.
func RenderSummary(rows []SummaryRow) string {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	labelCell := labelStyle.Width(labelWidth)
	valueCell := valueStyle.Width(valueWidth)
	sep := ruleStyle.Render(" | ")

	hline := ruleStyle.Render(strings.Repeat("-", labelWidth+valueWidth+lipgloss.Width(" | ")))
	lines := []string{hline}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelCell.Render(row.Label), sep, valueCell.Render(row.Value)))
	}
	lines = append(lines, hline)

	return strings.Join(lines, "\n")
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	ruleStyle  = lipgloss.NewStyle().Foreground(ColorDim)
)
