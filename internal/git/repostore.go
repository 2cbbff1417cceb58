package git

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
)

// ErrEmptyRange is returned when there is nothing between upstream and head.
var ErrEmptyRange = errors.New("no commits to rebase")

// RepositoryStore provides rebase-range queries built on top of a Repository.
type RepositoryStore struct {
	repo Repository
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// RebaseRange resolves upstream and head and returns the commits an
// interactive rebase of head onto upstream would replay. Merge commits are
// left out since the rebase linearizes history. An empty head means HEAD.
func (s *RepositoryStore) RebaseRange(upstream, head string) (RebaseRange, error) {
	if upstream == "" {
		return RebaseRange{}, errors.New("upstream revision is required")
	}
	if head == "" {
		head = "HEAD"
	}

	upstreamSha, err := s.repo.ResolveRevision(upstream)
	if err != nil {
		return RebaseRange{}, fmt.Errorf("resolving upstream: %w", err)
	}
	headSha, err := s.repo.ResolveRevision(head)
	if err != nil {
		return RebaseRange{}, fmt.Errorf("resolving head: %w", err)
	}

	log, err := s.repo.CommitLog(upstreamSha, headSha)
	if err != nil {
		return RebaseRange{}, fmt.Errorf("listing commits %s..%s: %w", upstream, head, err)
	}

	commits := oldestFirst(log)
	if len(commits) == 0 {
		return RebaseRange{}, fmt.Errorf("%w in %s..%s", ErrEmptyRange, upstream, head)
	}

	mergeBase, err := s.repo.FindMergeBase(upstreamSha, headSha)
	if err != nil {
		return RebaseRange{}, fmt.Errorf("finding merge base: %w", err)
	}

	return RebaseRange{
		Upstream:  upstreamSha,
		Head:      headSha,
		MergeBase: mergeBase,
		Commits:   commits,
	}, nil
}

// RebaseCommits loads the rebase range as an editable plan in which every
// commit is picked.
func (s *RepositoryStore) RebaseCommits(upstream, head string, shortLen int) ([]rebase.EditableCommit, error) {
	rr, err := s.RebaseRange(upstream, head)
	if err != nil {
		return nil, err
	}
	return ToEditable(rr.Commits, shortLen), nil
}

// ToEditable converts commits to plan entries with the pick action.
func ToEditable(commits []Commit, shortLen int) []rebase.EditableCommit {
	if shortLen <= 0 {
		shortLen = DefaultShortShaLength
	}

	result := make([]rebase.EditableCommit, 0, len(commits))
	for _, c := range commits {
		result = append(result, rebase.EditableCommit{
			OID:     c.Sha,
			ShortID: c.ShortSha(shortLen),
			Summary: c.Summary(),
			Action:  rebase.ActionPick,
		})
	}
	return result
}

// oldestFirst drops merge commits and orders the rest so that every commit
// comes after its parents. Input is expected newest first.
func oldestFirst(commits []Commit) []Commit {
	bySha := make(map[string]Commit, len(commits))
	for _, c := range commits {
		bySha[c.Sha] = c
	}

	visited := make(map[string]bool, len(commits))
	ordered := make([]Commit, 0, len(commits))

	var visit func(c Commit)
	visit = func(c Commit) {
		if visited[c.Sha] {
			return
		}
		visited[c.Sha] = true
		for _, p := range c.Parents {
			if parent, ok := bySha[p]; ok {
				visit(parent)
			}
		}
		if !c.IsMerge() {
			ordered = append(ordered, c)
		}
	}

	for i := len(commits) - 1; i >= 0; i-- {
		visit(commits[i])
	}

	return ordered
}
