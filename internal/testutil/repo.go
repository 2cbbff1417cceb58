// Package testutil builds temporary git repositories shaped like the
// branches a rebase plan is loaded from: a base commit, usually tagged as the
// upstream, followed by the feature commits to be rearranged.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// TestRepo is an on-disk repository with a deterministic history. Commit
// times advance one minute per commit, so log order always matches the order
// commits were added.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewTestRepo initializes an empty repository in t.TempDir().
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory, suitable for --path and
// get_rebase_commits.
func (r *TestRepo) Path() string {
	return r.path
}

// AddCommit commits a fresh file on HEAD with message and returns the full
// SHA. Messages may carry a body after a blank line; the first line is the
// summary a plan shows.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	return r.commit("file", message, nil)
}

// AddCommits adds one commit per message, oldest first, and returns their
// SHAs in the same order, which is also the order a loaded plan lists them.
func (r *TestRepo) AddCommits(messages ...string) []string {
	r.t.Helper()
	shas := make([]string, 0, len(messages))
	for _, m := range messages {
		shas = append(shas, r.AddCommit(m))
	}
	return shas
}

// CreateTag points a lightweight tag at sha. Tests tag the base commit so it
// can be named as the upstream.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateBranch points a branch at sha and records it in the repo config.
func (r *TestRepo) CreateBranch(name, sha string) {
	r.t.Helper()

	ref := plumbing.NewReferenceFromStrings("refs/heads/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating branch %s: %v", name, err)
	}

	cfg, err := r.repo.Config()
	if err != nil {
		r.t.Fatalf("reading config: %v", err)
	}
	cfg.Branches[name] = &gogitconfig.Branch{
		Name:  name,
		Merge: plumbing.NewBranchReferenceName(name),
	}
	if err := r.repo.SetConfig(cfg); err != nil {
		r.t.Fatalf("saving config: %v", err)
	}
}

// Checkout switches HEAD to branch.
func (r *TestRepo) Checkout(branch string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		r.t.Fatalf("checking out %s: %v", branch, err)
	}
}

// MergeCommit records a merge of otherSha into HEAD and returns its SHA.
// Interactive rebase flattens merges, so a plan never lists this commit.
func (r *TestRepo) MergeCommit(message, otherSha string) string {
	r.t.Helper()
	return r.commit("merge", message, []plumbing.Hash{r.head(), plumbing.NewHash(otherSha)})
}

// WriteConfig writes rebaseplan.yml at the repo root.
func (r *TestRepo) WriteConfig(content string) {
	r.t.Helper()
	path := filepath.Join(r.path, "rebaseplan.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing config: %v", err)
	}
}

// HeadSha returns the full SHA of HEAD.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	return r.head().String()
}

// GitTodo returns the todo file `git rebase -i upstream` would open with:
// one pick per non-merge commit after upstream, oldest first, ids shortened
// to seven characters, followed by git's comment block.
func (r *TestRepo) GitTodo(upstream string) string {
	r.t.Helper()

	iter, err := r.repo.Log(&gogit.LogOptions{From: r.head()})
	if err != nil {
		r.t.Fatalf("reading log: %v", err)
	}

	var picks []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash.String() == upstream {
			return storer.ErrStop
		}
		if c.NumParents() > 1 {
			return nil
		}
		summary, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
		picks = append(picks, fmt.Sprintf("pick %s %s", c.Hash.String()[:7], summary))
		return nil
	})
	if err != nil {
		r.t.Fatalf("walking log: %v", err)
	}
	slices.Reverse(picks)

	head := r.head().String()
	return strings.Join(picks, "\n") + "\n\n" +
		fmt.Sprintf("# Rebase %s..%s onto %s (%d commands)\n", upstream[:7], head[:7], upstream[:7], len(picks)) +
		"#\n# Commands:\n# p, pick <commit> = use commit\n"
}

func (r *TestRepo) head() plumbing.Hash {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash()
}

// commit writes a new file named after the commit time so every commit has
// a change, then commits it. Nil parents means HEAD.
func (r *TestRepo) commit(prefix, message string, parents []plumbing.Hash) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := fmt.Sprintf("%s-%d.txt", prefix, r.time.Unix())
	if err := os.WriteFile(filepath.Join(r.path, filename), []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", filename, err)
	}
	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging %s: %v", filename, err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
		Parents: parents,
	})
	if err != nil {
		r.t.Fatalf("committing %q: %v", message, err)
	}

	return hash.String()
}
