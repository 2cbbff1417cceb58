// Package output renders plans, previews, and todo scripts for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
)

const (
	arrowPrefix = "←"
	errorMarker = "!"
)

// WritePreview writes the projected history, oldest first. Folded commits
// are listed under the commit they fold into and rows that cannot be
// executed are marked.
func WritePreview(w io.Writer, preview []rebase.PreviewCommit) error {
	if len(preview) == 0 {
		_, err := fmt.Fprintln(w, "Resulting history: (empty)")
		return err
	}

	width := 0
	for _, row := range preview {
		width = max(width, len(row.ShortID))
	}

	fmt.Fprintln(w, "Resulting history (oldest first):")
	for _, row := range preview {
		marker := " "
		if row.HasError() {
			marker = errorMarker
		}
		fmt.Fprintf(w, "%s %-*s  %s\n", marker, width, row.ShortID, row.Summary)

		if row.IsSquashed {
			fmt.Fprintf(w, "  %*s  %s %s\n", width, "", arrowPrefix, strings.Join(row.SquashedFrom, ", "))
		}
		if row.HasError() {
			fmt.Fprintf(w, "  %*s  %s\n", width, "", row.Error)
		}
	}
	return nil
}

// FormatPreview returns the preview output as a string.
func FormatPreview(preview []rebase.PreviewCommit) string {
	var sb strings.Builder
	_ = WritePreview(&sb, preview)
	return sb.String()
}

// WriteStats writes the plan statistics on one line.
func WriteStats(w io.Writer, s rebase.Stats) error {
	_, err := fmt.Fprintf(w, "%d kept, %d squashed, %d dropped, %d reworded (%d commits)\n",
		s.Kept, s.Squashed, s.Dropped, s.Reworded, s.Total())
	return err
}
