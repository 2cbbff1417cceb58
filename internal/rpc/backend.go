package rpc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	"github.com/rs/zerolog/log"
)

// Backend is the git side of the planner: it loads plans and applies
// finished todo scripts.
type Backend interface {
	GetRebaseCommits(ctx context.Context, params GetRebaseCommitsParams) (*GetRebaseCommitsResult, error)
	ExecuteInteractiveRebase(ctx context.Context, params ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error)
}

// OpenFunc opens the repository containing path.
type OpenFunc func(path string) (git.Repository, error)

// Compile-time check that LocalBackend implements Backend.
var _ Backend = (*LocalBackend)(nil)

// LocalBackend reads commits from a local repository and hands todo
// scripts to git through the todo file of a running interactive rebase.
type LocalBackend struct {
	open   OpenFunc
	config config.EffectiveConfiguration
}

// NewLocalBackend creates a backend that opens repositories with go-git.
func NewLocalBackend(ec config.EffectiveConfiguration) *LocalBackend {
	return NewLocalBackendWithOpener(ec, func(path string) (git.Repository, error) {
		return git.Open(path)
	})
}

// NewLocalBackendWithOpener creates a backend with a custom repository opener.
func NewLocalBackendWithOpener(ec config.EffectiveConfiguration, open OpenFunc) *LocalBackend {
	return &LocalBackend{open: open, config: ec}
}

// GetRebaseCommits loads the commits between upstream and head.
func (b *LocalBackend) GetRebaseCommits(ctx context.Context, params GetRebaseCommitsParams) (*GetRebaseCommitsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := params.Path
	if path == "" {
		path = "."
	}

	repo, err := b.open(path)
	if err != nil {
		return nil, err
	}

	p, err := plan.FromRepository(git.NewRepositoryStore(repo), params.Upstream, params.Head, b.config)
	if err != nil {
		return nil, err
	}

	return &GetRebaseCommitsResult{
		Upstream:  p.Upstream,
		Head:      p.Head,
		MergeBase: p.MergeBase,
		Commits:   p.Commits,
	}, nil
}

// ExecuteInteractiveRebase checks the todo script and writes it to the
// todo file. The file is replaced atomically so git never reads a partial
// script.
//
// When the todo file already exists it is the list git prepared for the
// running rebase. The script must name exactly the commits in it: a commit
// git would replay that the script leaves out would be lost, so the write is
// refused with plan.ErrInvalidPlan and the plan has to be reloaded.
func (b *LocalBackend) ExecuteInteractiveRebase(ctx context.Context, params ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.TodoFile == "" {
		return nil, errors.New("todo file is required")
	}

	lines, err := rebase.ParseTodo(params.TodoScript)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: script has no commands", rebase.ErrInvalidTodo)
	}

	existing, err := os.ReadFile(params.TodoFile)
	switch {
	case err == nil:
		if err := reconcileTodo(rebase.CommitRefs(string(existing)), scriptRefs(lines)); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading todo file: %w", err)
	}

	if err := writeFileAtomic(params.TodoFile, []byte(params.TodoScript+"\n")); err != nil {
		return nil, err
	}

	log.Info().
		Str("todo_file", params.TodoFile).
		Int("lines", len(lines)).
		Msg("wrote rebase todo")

	return &ExecuteInteractiveRebaseResult{TodoFile: params.TodoFile, Lines: len(lines)}, nil
}

func scriptRefs(lines []rebase.TodoLine) []string {
	refs := make([]string, 0, len(lines))
	for _, l := range lines {
		if !l.IsExec() {
			refs = append(refs, l.Ref)
		}
	}
	return refs
}

// reconcileTodo compares the commits of git's todo with those of the
// replacement script. Ids may be abbreviated to different lengths.
func reconcileTodo(todo, script []string) error {
	if missing := unlisted(todo, script); len(missing) > 0 {
		return fmt.Errorf("%w: rebase todo has %s which the plan does not list; reload the plan",
			plan.ErrInvalidPlan, strings.Join(missing, ", "))
	}
	if extra := unlisted(script, todo); len(extra) > 0 {
		return fmt.Errorf("%w: plan lists %s which the rebase todo does not have",
			plan.ErrInvalidPlan, strings.Join(extra, ", "))
	}
	return nil
}

func unlisted(refs, in []string) []string {
	var out []string
	for _, ref := range refs {
		if !slices.ContainsFunc(in, func(other string) bool { return sameCommit(ref, other) }) {
			out = append(out, ref)
		}
	}
	return out
}

func sameCommit(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rebaseplan-todo-*")
	if err != nil {
		return fmt.Errorf("creating temp todo file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp todo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp todo file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing todo file: %w", err)
	}
	return nil
}
