// Package plan holds the rebase plan while it is being edited: loading it
// from a repository or a plan file, applying user edits, and handing the
// finished plan to the todo serializer.
package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	"github.com/rs/zerolog/log"
)

var (
	// ErrIndexOutOfRange is returned when an edit addresses a missing entry.
	ErrIndexOutOfRange = errors.New("commit index out of range")
	// ErrCommitNotFound is returned when a commit reference matches no entry.
	ErrCommitNotFound = errors.New("commit not found in plan")
	// ErrAmbiguousCommit is returned when a commit reference matches several entries.
	ErrAmbiguousCommit = errors.New("ambiguous commit reference")
	// ErrNotExecutable is returned when a todo is requested for a plan that
	// cannot be run.
	ErrNotExecutable = errors.New("plan cannot be executed")
)

// Plan is an interactive rebase plan under edit. Commits are ordered oldest
// first.
type Plan struct {
	Upstream  string                  `yaml:"upstream,omitempty" json:"upstream,omitempty"`
	Head      string                  `yaml:"head,omitempty" json:"head,omitempty"`
	MergeBase string                  `yaml:"merge-base,omitempty" json:"mergeBase,omitempty"`
	Commits   []rebase.EditableCommit `yaml:"commits" json:"commits"`
}

// New creates a plan over the given commits.
func New(upstream, head string, commits []rebase.EditableCommit) *Plan {
	return &Plan{Upstream: upstream, Head: head, Commits: commits}
}

// FromRepository loads the commits between upstream and head into a plan
// where every commit is picked. An empty upstream falls back to the
// configured one. With autosquash set to apply, the plan is rearranged
// before it is returned.
func FromRepository(store *git.RepositoryStore, upstream, head string, ec config.EffectiveConfiguration) (*Plan, error) {
	if upstream == "" {
		upstream = ec.Upstream
	}

	rr, err := store.RebaseRange(upstream, head)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		Upstream:  rr.Upstream,
		Head:      rr.Head,
		MergeBase: rr.MergeBase,
		Commits:   git.ToEditable(rr.Commits, ec.ShortShaLength),
	}

	log.Debug().
		Str("upstream", upstream).
		Int("commits", len(p.Commits)).
		Msg("loaded rebase plan")

	if ec.Autosquash != config.AutosquashOff && p.CanApplyAutosquash() {
		if ec.Autosquash == config.AutosquashApply {
			p.ApplyAutosquash()
		} else {
			log.Info().Msg("plan contains fixup!/squash! commits; run autosquash to rearrange them")
		}
	}

	return p, nil
}

// Len returns the number of commits in the plan.
func (p *Plan) Len() int {
	return len(p.Commits)
}

// Find returns the index of the commit whose short id equals ref or whose
// full id starts with ref.
func (p *Plan) Find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrCommitNotFound)
	}

	found := -1
	for i, c := range p.Commits {
		if c.ShortID != ref && !strings.HasPrefix(c.OID, ref) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %q", ErrAmbiguousCommit, ref)
		}
		found = i
	}

	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrCommitNotFound, ref)
	}
	return found, nil
}

// SetAction changes the action of the commit at index i. Changing away
// from reword keeps any edited message so it is restored if the user
// switches back.
func (p *Plan) SetAction(i int, action rebase.Action) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if !action.Valid() {
		return fmt.Errorf("%w: %q", rebase.ErrUnknownAction, string(action))
	}
	p.Commits[i].Action = action
	return nil
}

// SetMessage rewords the commit at index i with a new full message.
func (p *Plan) SetMessage(i int, message string) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.Commits[i].Action = rebase.ActionReword
	p.Commits[i].NewMessage = &message
	return nil
}

// ClearMessage discards an edited message. The action is left alone.
func (p *Plan) ClearMessage(i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.Commits[i].NewMessage = nil
	return nil
}

// Move relocates the commit at index from so that it ends up at index to.
func (p *Plan) Move(from, to int) error {
	if err := p.checkIndex(from); err != nil {
		return err
	}
	if err := p.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	c := p.Commits[from]
	if from < to {
		copy(p.Commits[from:to], p.Commits[from+1:to+1])
	} else {
		copy(p.Commits[to+1:from+1], p.Commits[to:from])
	}
	p.Commits[to] = c
	return nil
}

// CanApplyAutosquash returns true if the plan has fixup!/squash! commits.
func (p *Plan) CanApplyAutosquash() bool {
	return rebase.DetectAutosquashCommits(p.Commits)
}

// ApplyAutosquash rearranges the plan so autosquash commits follow their
// targets. It returns the short ids of autosquash commits that matched no
// commit; those keep their action and move to the end of the plan.
func (p *Plan) ApplyAutosquash() []string {
	commits, unmatched := rebase.ApplyAutosquashReport(p.Commits)
	p.Commits = commits

	for _, id := range unmatched {
		log.Warn().Str("commit", id).Msg("autosquash commit has no matching target")
	}
	return unmatched
}

// Preview returns the projected history.
func (p *Plan) Preview() []rebase.PreviewCommit {
	return rebase.GeneratePreview(p.Commits)
}

// Stats returns the plan statistics.
func (p *Plan) Stats() rebase.Stats {
	return rebase.GetStats(p.Commits)
}

// HasValidationErrors returns true if any commit has nothing to fold into.
func (p *Plan) HasValidationErrors() bool {
	return rebase.HasValidationErrors(p.Commits)
}

// CanExecute returns true if the plan is free of validation errors and
// keeps at least one commit.
func (p *Plan) CanExecute() bool {
	return p.Stats().Kept > 0 && !p.HasValidationErrors()
}

// Todo serializes the plan. It refuses plans that cannot be executed
// (ErrNotExecutable) and commit ids that are not hex object names
// (ErrInvalidPlan).
func (p *Plan) Todo() (string, error) {
	if p.HasValidationErrors() {
		return "", fmt.Errorf("%w: squash or fixup without a previous commit", ErrNotExecutable)
	}
	if p.Stats().Kept == 0 {
		return "", fmt.Errorf("%w: every commit is dropped or folded", ErrNotExecutable)
	}
	for i, c := range p.Commits {
		if err := checkIDs(i, c); err != nil {
			return "", err
		}
	}
	return rebase.GenerateTodo(p.Commits), nil
}

func (p *Plan) checkIndex(i int) error {
	if i < 0 || i >= len(p.Commits) {
		return fmt.Errorf("%w: %d (plan has %d commits)", ErrIndexOutOfRange, i, len(p.Commits))
	}
	return nil
}
