package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/caseline/caseline/internal/config"
	"github.com/caseline/caseline/internal/models"
	"github.com/caseline/caseline/internal/timeline"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	previewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	historyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	categoryStyles = map[models.Category]lipgloss.Style{
		models.CategoryEmail:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		models.CategoryPublic:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		models.CategoryInternal: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		models.CategorySystem:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
)

// renderTimeline prints one line per visible item, plus a history hint
// for reduced email threads.
func renderTimeline(w io.Writer, items []models.ProcessedItem) {
	for _, item := range items {
		style, ok := categoryStyles[item.Category]
		if !ok {
			style = previewStyle
		}

		direction := "<-"
		if item.IsOutgoing {
			direction = "->"
		}

		header := fmt.Sprintf("%s %s %s",
			timestampStyle.Render(item.CreatedDate.Format("2006-01-02 15:04")),
			style.Render(strings.ToUpper(string(item.Category))),
			direction,
		)
		if item.Author != "" {
			header += " " + item.Author
		}
		if item.Subject != "" {
			header += " - " + item.Subject
		}
		fmt.Fprintln(w, header)
		fmt.Fprintln(w, "  "+previewStyle.Render(item.Preview))
		if item.HasHistory {
			fmt.Fprintln(w, "  "+historyStyle.Render("[quoted history hidden]"))
		}
	}
}

// previewLine builds the plain-text preview for a raw HTML body.
func previewLine(cfg *config.Config, body string) string {
	return timeline.NewProcessor(cfg).Preview(body)
}
