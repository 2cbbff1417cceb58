package rpc

import "github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

// Method names.
const (
	MethodGetRebaseCommits         = "get_rebase_commits"
	MethodExecuteInteractiveRebase = "execute_interactive_rebase"
	MethodPlanPreview              = "plan.preview"
	MethodPlanAutosquash           = "plan.autosquash"
	MethodPlanTodo                 = "plan.todo"
)

// GetRebaseCommitsParams selects the commits to load into a plan.
type GetRebaseCommitsParams struct {
	// Path is any directory inside the repository.
	Path string `json:"path"`
	// Upstream is the revision the branch is rebased onto. Empty means the
	// configured upstream.
	Upstream string `json:"upstream,omitempty"`
	// Head is the branch tip. Empty means HEAD.
	Head string `json:"head,omitempty"`
}

// GetRebaseCommitsResult is a freshly loaded plan. Every commit is picked.
type GetRebaseCommitsResult struct {
	Upstream  string                  `json:"upstream"`
	Head      string                  `json:"head"`
	MergeBase string                  `json:"mergeBase,omitempty"`
	Commits   []rebase.EditableCommit `json:"commits"`
}

// ExecuteInteractiveRebaseParams carries a todo script to hand to git.
type ExecuteInteractiveRebaseParams struct {
	TodoScript string `json:"todoScript"`
	// TodoFile is the file git asked the sequence editor to fill in.
	TodoFile string `json:"todoFile"`
}

// ExecuteInteractiveRebaseResult reports what was written.
type ExecuteInteractiveRebaseResult struct {
	TodoFile string `json:"todoFile"`
	Lines    int    `json:"lines"`
}

// PlanParams is the input of the plan.* methods.
type PlanParams struct {
	Commits []rebase.EditableCommit `json:"commits"`
}

// PreviewResult is the projected history with its statistics.
type PreviewResult struct {
	Preview    []rebase.PreviewCommit `json:"preview"`
	Stats      rebase.Stats           `json:"stats"`
	HasErrors  bool                   `json:"hasErrors"`
	CanExecute bool                   `json:"canExecute"`
}

// AutosquashResult is a rearranged plan.
type AutosquashResult struct {
	Commits   []rebase.EditableCommit `json:"commits"`
	Unmatched []string                `json:"unmatched,omitempty"`
}

// TodoResult is a serialized plan.
type TodoResult struct {
	Todo string `json:"todo"`
}
