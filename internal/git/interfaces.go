package git

// Repository provides low-level git operations.
// This is the key abstraction point for testing and backend swapping.
type Repository interface {
	// Path returns the path to the .git directory.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// IsHeadDetached returns true if HEAD is not pointing to a branch.
	IsHeadDetached() bool

	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// ResolveRevision resolves a revision expression (branch, tag, SHA,
	// HEAD~2, ...) to a full commit SHA.
	ResolveRevision(rev string) (string, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// CommitLog returns commits reachable from 'to' but not from 'from',
	// in reverse chronological order. If from is empty, all ancestors of
	// 'to' are returned.
	CommitLog(from, to string) ([]Commit, error)

	// FindMergeBase returns the best common ancestor of two commits.
	// Returns an empty string if no merge base exists.
	FindMergeBase(sha1, sha2 string) (string, error)
}
