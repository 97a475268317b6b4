package formatter

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	StyleHeader = lipgloss.NewStyle().Bold(true)
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	StyleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	StyleActive = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	StyleBreak  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	StyleIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Dim renders s in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// RenderBox wraps content in a titled box.
func RenderBox(title, content string) string {
	return StyleTitle.Render(title) + "\n" + boxStyle.Render(content) + "\n"
}

// FormatDuration renders a duration as h:mm:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// HumanTimestamp renders a time for table display.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

// TruncID shortens a uuid for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
