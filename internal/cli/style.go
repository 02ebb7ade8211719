package cli

import (
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0)
	dayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// writeSchedule печатает HTML-текст расписания в терминал: заголовки дней выделяются стилем
func writeSchedule(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.HasPrefix(line, "<b>") && strings.HasSuffix(line, "</b>") {
			line = dayStyle.Render(html.UnescapeString(strings.TrimSuffix(strings.TrimPrefix(line, "<b>"), "</b>")))
		} else {
			line = html.UnescapeString(line)
		}
		io.WriteString(w, line+"\n")
	}
}
