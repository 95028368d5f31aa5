package manager

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")) // Red
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")) // Green
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// generateLineDiff creates a line oriented diff between the file on disk and
// the freshly rendered output, using sergi/go-diff. Colors follow the
// lipgloss color profile, so the text is plain when color is disabled.
func generateLineDiff(current, rendered, path string) string {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(current, rendered)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("--- "+path) + "\n")
	sb.WriteString(headerStyle.Render("+++ rendered") + "\n")

	for _, diff := range diffs {
		lines := strings.Split(diff.Text, "\n")
		// Remove trailing empty string from split
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(deleteStyle.Render("- "+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(insertStyle.Render("+ "+line) + "\n")
			case diffmatchpatch.DiffEqual:
				sb.WriteString("  " + line + "\n")
			}
		}
	}

	return sb.String()
}
