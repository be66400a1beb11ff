package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for summary headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for destination paths
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// boxStyle for the run summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// tagStyle for record tags in listings
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

// FormatBuildSummary renders the build run summary box.
func FormatBuildSummary(w io.Writer, persons, families int, dest string) {
	line := fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Persons:"), persons,
		dimStyle.Render("Families:"), families,
	)
	content := titleStyle.Render("Outline Expanded") + "\n" + line + destinationLine(dest)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatNormalizeSummary renders the normalization run summary box.
func FormatNormalizeSummary(w io.Writer, records, roots int, dest string) {
	line := fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Records:"), records,
		dimStyle.Render("Roots:"), roots,
	)
	content := titleStyle.Render("Database Processed") + "\n" + line + destinationLine(dest)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatRootLine renders one root record in a dump listing.
func FormatRootLine(w io.Writer, tag, xref string, nodes int) {
	if xref == "" {
		xref = dimStyle.Render("-")
	}
	fmt.Fprintf(w, "%s %s  %s\n",
		tagStyle.Render(tag), xref,
		dimStyle.Render(fmt.Sprintf("%d records", nodes)))
}

func destinationLine(dest string) string {
	if dest == "" {
		return "\n" + dimStyle.Render("Output:") + " " + dimStyle.Render("not persisted")
	}
	return "\n" + dimStyle.Render("Output:") + " " + successStyle.Render(dest)
}
