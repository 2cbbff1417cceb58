package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	PathFunc             func() string
	WorkingDirectoryFunc func() string
	IsHeadDetachedFunc   func() bool
	HeadFunc             func() (Branch, error)
	ResolveRevisionFunc  func(string) (string, error)
	CommitFromShaFunc    func(string) (Commit, error)
	CommitLogFunc        func(string, string) ([]Commit, error)
	FindMergeBaseFunc    func(string, string) (string, error)
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) IsHeadDetached() bool {
	if m.IsHeadDetachedFunc != nil {
		return m.IsHeadDetachedFunc()
	}
	return false
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

// ResolveRevision returns rev unchanged when no function is set.
func (m *MockRepository) ResolveRevision(rev string) (string, error) {
	if m.ResolveRevisionFunc != nil {
		return m.ResolveRevisionFunc(rev)
	}
	return rev, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) CommitLog(from, to string) ([]Commit, error) {
	if m.CommitLogFunc != nil {
		return m.CommitLogFunc(from, to)
	}
	return nil, nil
}

func (m *MockRepository) FindMergeBase(sha1, sha2 string) (string, error) {
	if m.FindMergeBaseFunc != nil {
		return m.FindMergeBaseFunc(sha1, sha2)
	}
	return "", nil
}
