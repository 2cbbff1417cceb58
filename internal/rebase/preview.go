package rebase

import (
	"fmt"
	"strings"
)

// EmptyMessagePlaceholder is shown for a reword whose new first line is blank.
const EmptyMessagePlaceholder = "(empty message)"

// GeneratePreview projects the history that the plan would produce.
//
// Dropped commits are omitted. A squash or fixup is folded into the nearest
// preceding surviving commit; one with no such commit becomes an error row.
func GeneratePreview(commits []EditableCommit) []PreviewCommit {
	preview := make([]PreviewCommit, 0, len(commits))
	hasBaseCommit := false

	i := 0
	for i < len(commits) {
		commit := commits[i]

		if commit.Action == ActionDrop {
			i++
			continue
		}

		if commit.Action.IsSquashLike() && !hasBaseCommit {
			preview = append(preview, PreviewCommit{
				ShortID: commit.ShortID,
				Summary: commit.Summary,
				Error:   fmt.Sprintf("Cannot %s: no previous commit to combine with", commit.Action),
			})
			i++
			continue
		}

		hasBaseCommit = true

		var squashedFrom []string
		j := i + 1
		for j < len(commits) && commits[j].Action.IsSquashLike() {
			squashedFrom = append(squashedFrom, commits[j].ShortID)
			j++
		}
		i = j

		row := PreviewCommit{
			ShortID:    commit.ShortID,
			Summary:    previewSummary(commit),
			IsSquashed: len(squashedFrom) > 0,
		}
		if len(squashedFrom) > 0 {
			row.SquashedFrom = squashedFrom
		}
		preview = append(preview, row)
	}

	return preview
}

// HasValidationErrors returns true if any preview row carries an error.
// A plan with validation errors must not be executed.
func HasValidationErrors(commits []EditableCommit) bool {
	for _, row := range GeneratePreview(commits) {
		if row.HasError() {
			return true
		}
	}
	return false
}

// previewSummary resolves the summary line displayed for a base commit.
func previewSummary(commit EditableCommit) string {
	if commit.Action != ActionReword || commit.NewMessage == nil {
		return commit.Summary
	}

	firstLine, _, _ := strings.Cut(*commit.NewMessage, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if firstLine == "" {
		return EmptyMessagePlaceholder
	}
	return firstLine
}
