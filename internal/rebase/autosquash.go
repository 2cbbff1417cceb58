package rebase

import (
	"slices"
	"strings"
)

const (
	fixupPrefix  = "fixup! "
	squashPrefix = "squash! "
)

// IsAutosquashSummary returns true if the summary carries a fixup! or
// squash! marker. The match is case-sensitive and includes the trailing space.
func IsAutosquashSummary(summary string) bool {
	return strings.HasPrefix(summary, fixupPrefix) || strings.HasPrefix(summary, squashPrefix)
}

// DetectAutosquashCommits returns true if any commit in the plan is an
// autosquash commit.
func DetectAutosquashCommits(commits []EditableCommit) bool {
	for _, c := range commits {
		if IsAutosquashSummary(c.Summary) {
			return true
		}
	}
	return false
}

// ApplyAutosquash moves every fixup!/squash! commit directly after the commit
// it targets and sets its action to fixup or squash. The input is not
// modified.
//
// A target is the commit whose summary equals the marker's remainder; only
// when no commit matches exactly is the first commit whose summary starts
// with the remainder used. Several commits targeting the same commit keep
// their original relative order. Commits with no target keep their action
// and are appended to the end.
func ApplyAutosquash(commits []EditableCommit) []EditableCommit {
	result, _ := ApplyAutosquashReport(commits)
	return result
}

// ApplyAutosquashReport is ApplyAutosquash that also returns the short ids of
// autosquash commits that found no target, in plan order.
func ApplyAutosquashReport(commits []EditableCommit) ([]EditableCommit, []string) {
	working := make([]EditableCommit, 0, len(commits))
	var pending []EditableCommit

	for _, c := range commits {
		if IsAutosquashSummary(c.Summary) {
			pending = append(pending, c)
			continue
		}
		working = append(working, c)
	}

	var unmatched []string
	for _, c := range pending {
		isFixup := strings.HasPrefix(c.Summary, fixupPrefix)
		var target string
		if isFixup {
			target = c.Summary[len(fixupPrefix):]
		} else {
			target = c.Summary[len(squashPrefix):]
		}

		idx := findAutosquashTarget(working, target)
		if idx < 0 {
			unmatched = append(unmatched, c.ShortID)
			working = append(working, c)
			continue
		}

		if isFixup {
			c.Action = ActionFixup
		} else {
			c.Action = ActionSquash
		}

		pos := idx + 1
		for pos < len(working) && working[pos].Action.IsSquashLike() {
			pos++
		}
		working = slices.Insert(working, pos, c)
	}

	return working, unmatched
}

// findAutosquashTarget returns the index of the exact summary match, falling
// back to the first prefix match, or -1.
func findAutosquashTarget(commits []EditableCommit, target string) int {
	for i, c := range commits {
		if c.Summary == target {
			return i
		}
	}
	for i, c := range commits {
		if strings.HasPrefix(c.Summary, target) {
			return i
		}
	}
	return -1
}
