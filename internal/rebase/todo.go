package rebase

import (
	"regexp"
	"strings"
)

var lineBreakRun = regexp.MustCompile(`[\r\n]+`)

// printfEscaper prepares a message for a single-quoted printf '%b' argument.
// Backslashes are doubled so %b restores them, single quotes close and reopen
// the quoting, and every line ending becomes a literal \n.
var printfEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `'\''`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

// GenerateTodo serializes a plan into a rebase todo script. Lines are joined
// with '\n' and there is no trailing newline.
//
// A reword with a changed message is written as a pick followed by an exec
// line that amends the message, since the todo format has no verb that
// carries a replacement message. A reword without a change is a plain pick.
func GenerateTodo(commits []EditableCommit) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		summary := sanitizeSummary(c.Summary)

		switch {
		case c.HasMessageChange():
			lines = append(lines,
				todoLine(ActionPick, c.ShortID, summary),
				amendExecLine(*c.NewMessage),
			)
		case c.Action == ActionReword:
			lines = append(lines, todoLine(ActionPick, c.ShortID, summary))
		default:
			lines = append(lines, todoLine(c.Action, c.ShortID, summary))
		}
	}
	return strings.Join(lines, "\n")
}

func todoLine(action Action, shortID, summary string) string {
	return string(action) + " " + shortID + " " + summary
}

// amendExecLine builds the exec line that replaces the message of the commit
// picked on the line before it.
func amendExecLine(message string) string {
	return `exec git commit --amend -m "$(printf '%b' '` + escapeForPrintf(message) + `')"`
}

func escapeForPrintf(message string) string {
	return printfEscaper.Replace(message)
}

// sanitizeSummary flattens line breaks so a summary cannot start a new todo line.
func sanitizeSummary(summary string) string {
	return strings.TrimSpace(lineBreakRun.ReplaceAllString(summary, " "))
}
