package rpc

import (
	"context"
	"errors"
	"testing"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
	"github.com/stretchr/testify/require"

	gogit "github.com/go-git/go-git/v5"
)

type fakeBackend struct {
	getFunc  func(context.Context, GetRebaseCommitsParams) (*GetRebaseCommitsResult, error)
	execFunc func(context.Context, ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error)
}

func (f *fakeBackend) GetRebaseCommits(ctx context.Context, p GetRebaseCommitsParams) (*GetRebaseCommitsResult, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, p)
	}
	return &GetRebaseCommitsResult{}, nil
}

func (f *fakeBackend) ExecuteInteractiveRebase(ctx context.Context, p ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error) {
	if f.execFunc != nil {
		return f.execFunc(ctx, p)
	}
	return &ExecuteInteractiveRebaseResult{TodoFile: p.TodoFile}, nil
}

func newTestClient(b Backend) *Client {
	return NewClient(InProcess(NewServer(b)))
}

func pick(id, summary string) rebase.EditableCommit {
	return rebase.EditableCommit{OID: id + "0000", ShortID: id, Summary: summary, Action: rebase.ActionPick}
}

func TestService_Methods(t *testing.T) {
	r := NewRegistry()
	NewService(&fakeBackend{}).RegisterMethods(r)
	require.Equal(t, []string{
		MethodExecuteInteractiveRebase,
		MethodGetRebaseCommits,
		MethodPlanAutosquash,
		MethodPlanPreview,
		MethodPlanTodo,
	}, r.Methods())
}

func TestClient_GetRebaseCommits(t *testing.T) {
	var got GetRebaseCommitsParams
	b := &fakeBackend{
		getFunc: func(_ context.Context, p GetRebaseCommitsParams) (*GetRebaseCommitsResult, error) {
			got = p
			return &GetRebaseCommitsResult{
				Upstream: "up",
				Head:     "hd",
				Commits:  []rebase.EditableCommit{pick("aaa", "First")},
			}, nil
		},
	}

	result, err := newTestClient(b).GetRebaseCommits(context.Background(), GetRebaseCommitsParams{Path: "/repo", Upstream: "main"})
	require.NoError(t, err)
	require.Equal(t, GetRebaseCommitsParams{Path: "/repo", Upstream: "main"}, got)
	require.Equal(t, "up", result.Upstream)
	require.Equal(t, []rebase.EditableCommit{pick("aaa", "First")}, result.Commits)
}

func TestClient_GetRebaseCommitsErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		sentinel error
	}{
		{"not a repo", gogit.ErrRepositoryNotExists, NotAGitRepo, gogit.ErrRepositoryNotExists},
		{"empty range", git.ErrEmptyRange, EmptyRange, git.ErrEmptyRange},
		{"other", errors.New("object not found"), GitOperationFailed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{
				getFunc: func(context.Context, GetRebaseCommitsParams) (*GetRebaseCommitsResult, error) {
					return nil, tt.err
				},
			}
			_, err := newTestClient(b).GetRebaseCommits(context.Background(), GetRebaseCommitsParams{})

			var rpcErr *Error
			require.ErrorAs(t, err, &rpcErr)
			require.Equal(t, tt.code, rpcErr.Code)
			if tt.sentinel != nil {
				require.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClient_ExecuteInteractiveRebase(t *testing.T) {
	var got ExecuteInteractiveRebaseParams
	b := &fakeBackend{
		execFunc: func(_ context.Context, p ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error) {
			got = p
			return &ExecuteInteractiveRebaseResult{TodoFile: p.TodoFile, Lines: 1}, nil
		},
	}
	c := newTestClient(b)

	result, err := c.ExecuteInteractiveRebase(context.Background(), ExecuteInteractiveRebaseParams{
		TodoScript: "pick aaa First",
		TodoFile:   "/repo/.git/rebase-merge/git-rebase-todo",
	})
	require.NoError(t, err)
	require.Equal(t, "pick aaa First", got.TodoScript)
	require.Equal(t, 1, result.Lines)

	_, err = c.ExecuteInteractiveRebase(context.Background(), ExecuteInteractiveRebaseParams{TodoFile: "x"})
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidParams, rpcErr.Code)

	_, err = c.ExecuteInteractiveRebase(context.Background(), ExecuteInteractiveRebaseParams{TodoScript: "pick a b"})
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidParams, rpcErr.Code)
}

func TestClient_ExecuteInteractiveRebaseInvalidTodo(t *testing.T) {
	b := &fakeBackend{
		execFunc: func(_ context.Context, p ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error) {
			_, err := rebase.ParseTodo(p.TodoScript)
			return nil, err
		},
	}
	_, err := newTestClient(b).ExecuteInteractiveRebase(context.Background(), ExecuteInteractiveRebaseParams{
		TodoScript: "smash aaa First",
		TodoFile:   "todo",
	})
	require.ErrorIs(t, err, rebase.ErrInvalidTodo)
}

func TestClient_Preview(t *testing.T) {
	c := newTestClient(&fakeBackend{})
	commits := []rebase.EditableCommit{pick("aaa", "First"), pick("bbb", "Second")}
	commits[1].Action = rebase.ActionFixup

	result, err := c.Preview(context.Background(), commits)
	require.NoError(t, err)
	require.Len(t, result.Preview, 1)
	require.Equal(t, []string{"bbb"}, result.Preview[0].SquashedFrom)
	require.Equal(t, rebase.Stats{Kept: 1, Squashed: 1}, result.Stats)
	require.False(t, result.HasErrors)
	require.True(t, result.CanExecute)

	commits[0].Action = rebase.ActionDrop
	result, err = c.Preview(context.Background(), commits)
	require.NoError(t, err)
	require.True(t, result.HasErrors)
	require.False(t, result.CanExecute)
	require.Equal(t, "Cannot fixup: no previous commit to combine with", result.Preview[0].Error)
}

func TestClient_Autosquash(t *testing.T) {
	c := newTestClient(&fakeBackend{})
	commits := []rebase.EditableCommit{
		pick("aaa", "Add parser"),
		pick("bbb", "Add lexer"),
		pick("ccc", "squash! Add parser"),
		pick("ddd", "fixup! Nothing here"),
	}

	result, err := c.Autosquash(context.Background(), commits)
	require.NoError(t, err)
	require.Equal(t, []string{"ddd"}, result.Unmatched)

	order := make([]string, 0, len(result.Commits))
	for _, cm := range result.Commits {
		order = append(order, cm.ShortID)
	}
	require.Equal(t, []string{"aaa", "ccc", "bbb", "ddd"}, order)
	require.Equal(t, rebase.ActionSquash, result.Commits[1].Action)
}

func TestClient_Todo(t *testing.T) {
	c := newTestClient(&fakeBackend{})
	msg := "It's new"
	commits := []rebase.EditableCommit{pick("aaa", "First"), pick("bbb", "Second")}
	commits[1].Action = rebase.ActionReword
	commits[1].NewMessage = &msg

	todo, err := c.Todo(context.Background(), commits)
	require.NoError(t, err)
	require.Equal(t, "pick aaa First\npick bbb Second\n"+
		`exec git commit --amend -m "$(printf '%b' 'It'\''s new')"`, todo)
}

func TestClient_TodoErrors(t *testing.T) {
	c := newTestClient(&fakeBackend{})

	commits := []rebase.EditableCommit{pick("aaa", "First")}
	commits[0].Action = rebase.ActionSquash
	_, err := c.Todo(context.Background(), commits)
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidPlan, rpcErr.Code)
	require.ErrorIs(t, err, plan.ErrInvalidPlan)

	dup := []rebase.EditableCommit{
		{ShortID: "aaa", Summary: "x", Action: rebase.ActionPick},
		{ShortID: "aaa", Summary: "y", Action: rebase.ActionPick},
	}
	_, err = c.Todo(context.Background(), dup)
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidPlan, rpcErr.Code)
}

func TestClient_TodoRejectsInjectedIDs(t *testing.T) {
	c := newTestClient(&fakeBackend{})

	for _, id := range []string{"aaa\nexec touch /tmp/x", "aaa bbb", "HEAD"} {
		commits := []rebase.EditableCommit{pick("aaa", "First")}
		commits[0].ShortID = id

		todo, err := c.Todo(context.Background(), commits)
		require.Empty(t, todo)
		var rpcErr *Error
		require.ErrorAs(t, err, &rpcErr, id)
		require.Equal(t, InvalidPlan, rpcErr.Code, id)
		require.ErrorIs(t, err, plan.ErrInvalidPlan, id)
	}
}

func TestClient_InvalidActionIsInvalidPlan(t *testing.T) {
	raw, err := InProcess(NewServer(&fakeBackend{})).Invoke(context.Background(), MethodPlanTodo,
		map[string]interface{}{"commits": []map[string]string{{"shortId": "aaa", "action": "smash"}}})
	require.Nil(t, raw)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidPlan, rpcErr.Code)
}

func TestClient_MissingParams(t *testing.T) {
	_, err := InProcess(NewServer(&fakeBackend{})).Invoke(context.Background(), MethodPlanPreview, nil)
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, InvalidParams, rpcErr.Code)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	orig := NewError(InvalidTodo, "x")
	require.Same(t, orig, FromError(orig))

	require.Equal(t, InvalidPlan, FromError(plan.ErrNotExecutable).Code)
	require.Equal(t, InternalError, FromError(errors.New("boom")).Code)
	require.Equal(t, "InvalidTodo", ErrorCodeName(InvalidTodo))
	require.Equal(t, "UnknownError", ErrorCodeName(1))
}
