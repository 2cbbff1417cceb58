package rebase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTodo is returned when a todo script contains a line that a
// rebase executor would reject.
var ErrInvalidTodo = errors.New("invalid todo script")

// VerbExec is the todo verb that runs a shell command between steps.
const VerbExec = "exec"

// TodoLine is a parsed todo script instruction.
type TodoLine struct {
	// Verb is the full verb name, with abbreviations expanded.
	Verb string
	// Ref is the commit id. Empty for exec lines.
	Ref string
	// Text is the free text after the commit id, or the command of an exec line.
	Text string
}

// IsExec returns true if the line runs a shell command.
func (l TodoLine) IsExec() bool {
	return l.Verb == VerbExec
}

// ParseTodo parses a todo script. Blank lines and '#' comments are skipped.
func ParseTodo(script string) ([]TodoLine, error) {
	var lines []TodoLine

	for n, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimLeft(rest, " \t")

		if verb == VerbExec || verb == "x" {
			if rest == "" {
				return nil, fmt.Errorf("%w: line %d: exec requires a command", ErrInvalidTodo, n+1)
			}
			lines = append(lines, TodoLine{Verb: VerbExec, Text: rest})
			continue
		}

		action, err := ParseAction(verb)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidTodo, n+1, err)
		}

		ref, text, _ := strings.Cut(rest, " ")
		if ref == "" {
			return nil, fmt.Errorf("%w: line %d: %s requires a commit id", ErrInvalidTodo, n+1, action)
		}

		lines = append(lines, TodoLine{Verb: string(action), Ref: ref, Text: text})
	}

	return lines, nil
}

// CommitRefs returns the commit ids replayed by a todo script, in order.
// Unlike ParseTodo it accepts every line git itself writes: verbs that do
// not replay a commit (label, reset, merge, update-ref, break, noop) are
// skipped, and the -C/-c flag of a fixup is stepped over.
func CommitRefs(script string) []string {
	var refs []string

	for _, raw := range strings.Split(script, "\n") {
		fields := strings.Fields(raw)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if _, err := ParseAction(fields[0]); err != nil {
			continue
		}

		ref := fields[1]
		if ref == "-C" || ref == "-c" {
			if len(fields) < 3 {
				continue
			}
			ref = fields[2]
		}
		refs = append(refs, ref)
	}

	return refs
}
