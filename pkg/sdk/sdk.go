// Package sdk provides a public Go API for planning interactive rebases.
//
// Basic usage:
//
//	p, err := sdk.Open(sdk.LocalOptions{
//	    Path:     "/path/to/repo",
//	    Upstream: "main",
//	})
//	p.ApplyAutosquash()
//	for _, row := range p.Preview() {
//	    fmt.Println(row.ShortID, row.Summary)
//	}
//	script, err := p.Todo()
//
// The pure plan functions (GeneratePreview, ApplyAutosquash, GetStats,
// GenerateTodo) can also be used directly on a slice of commits.
package sdk

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rpc"
)

type (
	// Action is what an interactive rebase does with a commit.
	Action = rebase.Action
	// EditableCommit is one entry of a rebase plan.
	EditableCommit = rebase.EditableCommit
	// PreviewCommit is one commit of the projected history.
	PreviewCommit = rebase.PreviewCommit
	// Stats summarizes a plan.
	Stats = rebase.Stats
	// TodoLine is a parsed todo script instruction.
	TodoLine = rebase.TodoLine
	// Plan is a rebase plan under edit.
	Plan = plan.Plan
)

// Rebase actions.
const (
	ActionPick   = rebase.ActionPick
	ActionReword = rebase.ActionReword
	ActionEdit   = rebase.ActionEdit
	ActionSquash = rebase.ActionSquash
	ActionFixup  = rebase.ActionFixup
	ActionDrop   = rebase.ActionDrop
)

// Errors callers may test for with errors.Is.
var (
	ErrUnknownAction   = rebase.ErrUnknownAction
	ErrInvalidTodo     = rebase.ErrInvalidTodo
	ErrInvalidPlan     = plan.ErrInvalidPlan
	ErrNotExecutable   = plan.ErrNotExecutable
	ErrIndexOutOfRange = plan.ErrIndexOutOfRange
	ErrEmptyRange      = git.ErrEmptyRange
)

// LocalOptions configures loading a plan from a local git repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Upstream is the revision to rebase onto. Empty means the configured
	// upstream.
	Upstream string

	// Head is the branch tip to rebase. Empty means HEAD.
	Head string

	// ConfigPath is the path to a rebaseplan YAML config file. If empty,
	// auto-detects rebaseplan.yml in .github/ or the repo root.
	ConfigPath string
}

// Open loads a plan for the commits between upstream and head of a local
// repository.
func Open(opts LocalOptions) (*Plan, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	repo, err := git.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := config.Load(opts.ConfigPath, repo.WorkingDirectory())
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return plan.FromRepository(git.NewRepositoryStore(repo), opts.Upstream, opts.Head, cfg.Effective())
}

// LoadPlan reads a YAML or JSON plan file.
func LoadPlan(path string) (*Plan, error) {
	return plan.LoadFromFile(path)
}

// NewPlan creates a plan over commits.
func NewPlan(upstream, head string, commits []EditableCommit) *Plan {
	return plan.New(upstream, head, commits)
}

// WriteTodoFile serializes p and writes it to the todo file of a rebase in
// progress, as a GIT_SEQUENCE_EDITOR would.
func WriteTodoFile(ctx context.Context, p *Plan, todoFile string) error {
	script, err := p.Todo()
	if err != nil {
		return err
	}

	backend := rpc.NewLocalBackend(config.CreateDefaultConfiguration().Effective())
	_, err = backend.ExecuteInteractiveRebase(ctx, rpc.ExecuteInteractiveRebaseParams{
		TodoScript: script,
		TodoFile:   todoFile,
	})
	return err
}

// ParseAction parses an action name or its one-letter abbreviation.
func ParseAction(s string) (Action, error) {
	return rebase.ParseAction(s)
}

// GeneratePreview projects the history commits would produce.
func GeneratePreview(commits []EditableCommit) []PreviewCommit {
	return rebase.GeneratePreview(commits)
}

// HasValidationErrors returns true if a squash or fixup has nothing to fold into.
func HasValidationErrors(commits []EditableCommit) bool {
	return rebase.HasValidationErrors(commits)
}

// DetectAutosquashCommits returns true if any commit is a fixup!/squash! commit.
func DetectAutosquashCommits(commits []EditableCommit) bool {
	return rebase.DetectAutosquashCommits(commits)
}

// ApplyAutosquash moves fixup!/squash! commits after their targets.
func ApplyAutosquash(commits []EditableCommit) []EditableCommit {
	return rebase.ApplyAutosquash(commits)
}

// GetStats counts kept, squashed, dropped, and reworded commits.
func GetStats(commits []EditableCommit) Stats {
	return rebase.GetStats(commits)
}

// GenerateTodo serializes commits into a rebase todo script.
func GenerateTodo(commits []EditableCommit) string {
	return rebase.GenerateTodo(commits)
}

// ParseTodo parses a rebase todo script.
func ParseTodo(script string) ([]TodoLine, error) {
	return rebase.ParseTodo(script)
}
