// Package git provides the git abstraction layer used to load the commit
// range of an interactive rebase. It defines concrete entity types (Commit,
// Branch), a Repository interface, and rebase-range queries via
// RepositoryStore.
package git

import (
	"strings"
	"time"
)

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
	tagRefPrefix               = "refs/tags/"
)

// DefaultShortShaLength is the abbreviation length used when none is configured.
const DefaultShortShaLength = 7

// Commit represents a git commit.
type Commit struct {
	Sha     string
	Parents []string // parent SHAs; len > 1 means merge commit
	When    time.Time
	Author  string
	Message string
}

// IsMerge returns true if the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortSha returns the first n characters of the SHA.
func (c Commit) ShortSha(n int) string {
	if n <= 0 || n >= len(c.Sha) {
		return c.Sha
	}
	return c.Sha[:n]
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	first, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimRight(first, "\r")
}

// IsEmpty returns true if the commit has no SHA (zero value).
func (c Commit) IsEmpty() bool {
	return c.Sha == ""
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical string // e.g., "refs/heads/main"
	Friendly  string // e.g., "main"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	for _, prefix := range []string{localBranchPrefix, remoteTrackingBranchPrefix, tagRefPrefix} {
		if strings.HasPrefix(canonical, prefix) {
			friendly = canonical[len(prefix):]
			break
		}
	}
	return ReferenceName{Canonical: canonical, Friendly: friendly}
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// IsBranch returns true if this reference is a local branch.
func (r ReferenceName) IsBranch() bool {
	return strings.HasPrefix(r.Canonical, localBranchPrefix)
}

// Branch represents a git branch.
type Branch struct {
	Name           ReferenceName
	Tip            *Commit
	IsDetachedHead bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}

// RebaseRange is the set of commits an interactive rebase of Head onto
// Upstream would replay, oldest first.
type RebaseRange struct {
	Upstream  string // resolved upstream SHA
	Head      string // resolved head SHA
	MergeBase string // best common ancestor; empty for unrelated histories
	Commits   []Commit
}
