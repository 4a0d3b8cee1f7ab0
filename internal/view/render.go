package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	clrBlue   = lipgloss.Color("#58a6ff")
	clrRed    = lipgloss.Color("#f85149")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")

	cellStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	blockedStyle = cellStyle.Foreground(clrSubtle)
	blueStyle    = cellStyle.Foreground(clrBlue).Bold(true)
	redStyle     = cellStyle.Foreground(clrRed).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(clrSubtle)
	resultStyle  = lipgloss.NewStyle().Foreground(clrGold).Bold(true)
	boardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(clrSubtle)
)

// Render draws v for a terminal. Highlighted pieces are bracketed so the
// winning groups stay visible without colour.
func Render(v View) string {
	var rows []string

	header := make([]string, 0, len(v.Cells)+1)
	header = append(header, cellStyle.Render(""))
	for c := range v.Cells {
		header = append(header, cellStyle.Foreground(clrSubtle).Render(fmt.Sprint(c+1)))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for r, row := range v.Cells {
		line := make([]string, 0, len(row)+1)
		line = append(line, cellStyle.Foreground(clrSubtle).Render(fmt.Sprint(r+1)))
		for _, cell := range row {
			line = append(line, renderCell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	var b strings.Builder
	b.WriteString(boardStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(v.Turn + "  " + v.Player))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(v.Next))
	if v.Result != nil {
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(fmt.Sprintf("Blue %d · Red %d · %s",
			v.Result.BlueScore, v.Result.RedScore, v.Result.Winner)))
	}
	return b.String()
}

func renderCell(c CellView) string {
	switch c.Kind {
	case "blocked":
		return blockedStyle.Render("##")
	case "owned":
		text := fmt.Sprint(c.Value)
		if c.Highlight {
			text = "[" + text + "]"
		} else if c.LastMove {
			text = text + "*"
		}
		if c.Owner == "blue" {
			return blueStyle.Render(text)
		}
		return redStyle.Render(text)
	default:
		return blockedStyle.Render("·")
	}
}
