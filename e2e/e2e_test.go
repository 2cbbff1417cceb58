// Package e2e contains end-to-end tests that exercise the full planning
// pipeline against real (temporary) git repositories.
//
// Each test creates a purpose-built git repo, loads a plan from it, edits
// the plan, and asserts on the preview and the todo script handed to git.
// This tests all layers together: git adapter → plan → engine → rpc.
package e2e

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rpc"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/testutil"

	"github.com/stretchr/testify/require"
)

// newFeatureRepo creates a repo with a "base" tag followed by the given
// commits and returns the repo and the commit SHAs.
func newFeatureRepo(t *testing.T, messages ...string) (*testutil.TestRepo, []string) {
	t.Helper()
	tr := testutil.NewTestRepo(t)
	tr.CreateTag("base", tr.AddCommit("Initial commit"))
	return tr, tr.AddCommits(messages...)
}

func loadPlan(t *testing.T, repoPath string) *plan.Plan {
	t.Helper()

	repo, err := git.Open(repoPath)
	require.NoError(t, err)

	cfg, err := config.NewBuilder().Add(&config.Config{Upstream: strPtr("base")}).Build()
	require.NoError(t, err)

	p, err := plan.FromRepository(git.NewRepositoryStore(repo), "", "", cfg.Effective())
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string { return &s }

func short(sha string) string { return sha[:git.DefaultShortShaLength] }

func TestE2E_FullPlanPipeline(t *testing.T) {
	tr, shas := newFeatureRepo(t,
		"Add parser",
		"Add lexer",
		"fixup! Add parser",
		"WIP debug",
		"Add docs",
	)
	parser, lexer, fix, wip, docs := short(shas[0]), short(shas[1]), short(shas[2]), short(shas[3]), short(shas[4])

	p := loadPlan(t, tr.Path())
	require.Equal(t, []string{parser, lexer, fix, wip, docs}, shortIDs(p))
	require.True(t, p.CanApplyAutosquash())

	require.Empty(t, p.ApplyAutosquash())
	require.Equal(t, []string{parser, fix, lexer, wip, docs}, shortIDs(p))

	require.NoError(t, p.SetAction(3, rebase.ActionDrop))
	require.NoError(t, p.SetMessage(4, "Document the \"parser\"\n\nIt's done"))

	preview := p.Preview()
	require.Len(t, preview, 3)
	require.Equal(t, []string{fix}, preview[0].SquashedFrom)
	require.Equal(t, lexer, preview[1].ShortID)
	require.Equal(t, `Document the "parser"`, preview[2].Summary)

	require.Equal(t, rebase.Stats{Kept: 3, Squashed: 1, Dropped: 1, Reworded: 1}, p.Stats())
	require.True(t, p.CanExecute())

	script, err := p.Todo()
	require.NoError(t, err)
	require.Equal(t, "pick "+parser+" Add parser\n"+
		"fixup "+fix+" fixup! Add parser\n"+
		"pick "+lexer+" Add lexer\n"+
		"drop "+wip+" WIP debug\n"+
		"pick "+docs+" Add docs\n"+
		`exec git commit --amend -m "$(printf '%b' 'Document the "parser"\n\nIt'\''s done')"`, script)

	lines, err := rebase.ParseTodo(script)
	require.NoError(t, err)
	require.Len(t, lines, 6)
	require.True(t, lines[5].IsExec())

	todoFile := filepath.Join(t.TempDir(), "git-rebase-todo")
	backend := rpc.NewLocalBackend(config.CreateDefaultConfiguration().Effective())
	result, err := backend.ExecuteInteractiveRebase(context.Background(), rpc.ExecuteInteractiveRebaseParams{
		TodoScript: script,
		TodoFile:   todoFile,
	})
	require.NoError(t, err)
	require.Equal(t, 6, result.Lines)

	data, err := os.ReadFile(todoFile)
	require.NoError(t, err)
	require.Equal(t, script+"\n", string(data))
}

func TestE2E_PlanFileRoundTrip(t *testing.T) {
	tr, _ := newFeatureRepo(t, "Add cache", "Tune cache", "squash! Add cache")

	p := loadPlan(t, tr.Path())
	p.ApplyAutosquash()
	require.NoError(t, p.SetAction(2, rebase.ActionReword))

	for _, format := range []string{plan.FormatYAML, plan.FormatJSON} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan."+format)
			require.NoError(t, p.WriteFile(path, format))

			loaded, err := plan.LoadFromFile(path)
			require.NoError(t, err)
			require.Equal(t, p, loaded)

			want, err := p.Todo()
			require.NoError(t, err)
			got, err := loaded.Todo()
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestE2E_OrphanBlocksExecution(t *testing.T) {
	tr, shas := newFeatureRepo(t, "fixup! Something upstream", "Add feature")

	p := loadPlan(t, tr.Path())
	require.Equal(t, []string{short(shas[0])}, p.ApplyAutosquash())
	require.Equal(t, []string{short(shas[1]), short(shas[0])}, shortIDs(p))

	require.NoError(t, p.SetAction(0, rebase.ActionFixup))
	require.True(t, p.HasValidationErrors())
	require.False(t, p.CanExecute())
	require.Equal(t, "Cannot fixup: no previous commit to combine with", p.Preview()[0].Error)

	_, err := p.Todo()
	require.ErrorIs(t, err, plan.ErrNotExecutable)
}

func TestE2E_EmptyRange(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.CreateTag("base", tr.AddCommit("Initial commit"))

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)

	_, err = plan.FromRepository(git.NewRepositoryStore(repo), "base", "", config.CreateDefaultConfiguration().Effective())
	require.ErrorIs(t, err, git.ErrEmptyRange)
}

func TestE2E_StalePlanKeepsGitTodo(t *testing.T) {
	tr, _ := newFeatureRepo(t, "Add parser", "Add lexer")

	planFile := filepath.Join(t.TempDir(), "plan.yml")
	require.NoError(t, loadPlan(t, tr.Path()).WriteFile(planFile, plan.FormatYAML))

	late := tr.AddCommit("Late commit")

	stale, err := plan.LoadFromFile(planFile)
	require.NoError(t, err)
	script, err := stale.Todo()
	require.NoError(t, err)

	todoFile := filepath.Join(t.TempDir(), "git-rebase-todo")
	gitTodo := tr.GitTodo(stale.Upstream)
	require.NoError(t, os.WriteFile(todoFile, []byte(gitTodo), 0o644))

	backend := rpc.NewLocalBackend(config.CreateDefaultConfiguration().Effective())
	_, err = backend.ExecuteInteractiveRebase(context.Background(), rpc.ExecuteInteractiveRebaseParams{
		TodoScript: script,
		TodoFile:   todoFile,
	})
	require.ErrorIs(t, err, plan.ErrInvalidPlan)
	require.ErrorContains(t, err, short(late))

	data, err := os.ReadFile(todoFile)
	require.NoError(t, err)
	require.Equal(t, gitTodo, string(data))

	fresh, err := loadPlan(t, tr.Path()).Todo()
	require.NoError(t, err)
	_, err = backend.ExecuteInteractiveRebase(context.Background(), rpc.ExecuteInteractiveRebaseParams{
		TodoScript: fresh,
		TodoFile:   todoFile,
	})
	require.NoError(t, err)
}

func TestE2E_RPCOverStdio(t *testing.T) {
	tr, shas := newFeatureRepo(t, "Add parser", "Add lexer", "fixup! Add parser")

	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	server := rpc.NewServer(rpc.NewLocalBackend(config.CreateDefaultConfiguration().Effective()))
	done := make(chan error, 1)
	go func() {
		done <- rpc.Serve(context.Background(), server, reqR, respW)
		respW.Close()
	}()

	ctx := context.Background()
	client := rpc.NewClient(rpc.NewStreamInvoker(respR, reqW))

	loaded, err := client.GetRebaseCommits(ctx, rpc.GetRebaseCommitsParams{Path: tr.Path(), Upstream: "base"})
	require.NoError(t, err)
	require.Equal(t, shas[2], loaded.Head)
	require.Len(t, loaded.Commits, 3)

	squashed, err := client.Autosquash(ctx, loaded.Commits)
	require.NoError(t, err)
	require.Empty(t, squashed.Unmatched)
	require.Equal(t, shas[2], squashed.Commits[1].OID)

	preview, err := client.Preview(ctx, squashed.Commits)
	require.NoError(t, err)
	require.True(t, preview.CanExecute)
	require.Len(t, preview.Preview, 2)

	script, err := client.Todo(ctx, squashed.Commits)
	require.NoError(t, err)

	todoFile := filepath.Join(t.TempDir(), "git-rebase-todo")
	result, err := client.ExecuteInteractiveRebase(ctx, rpc.ExecuteInteractiveRebaseParams{
		TodoScript: script,
		TodoFile:   todoFile,
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Lines)

	_, err = client.ExecuteInteractiveRebase(ctx, rpc.ExecuteInteractiveRebaseParams{
		TodoScript: "smash " + short(shas[0]) + " Add parser",
		TodoFile:   todoFile,
	})
	require.ErrorIs(t, err, rebase.ErrInvalidTodo)

	data, err := os.ReadFile(todoFile)
	require.NoError(t, err)
	require.Equal(t, script+"\n", string(data))

	_, err = client.GetRebaseCommits(ctx, rpc.GetRebaseCommitsParams{Path: t.TempDir(), Upstream: "base"})
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, rpc.NotAGitRepo, rpcErr.Code)

	require.NoError(t, reqW.Close())
	require.NoError(t, <-done)
}

func shortIDs(p *plan.Plan) []string {
	ids := make([]string, 0, p.Len())
	for _, c := range p.Commits {
		ids = append(ids, c.ShortID)
	}
	return ids
}
