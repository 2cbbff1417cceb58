package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
)

// Service binds the planner methods to a backend.
type Service struct {
	backend Backend
}

// NewService creates a service over the given backend.
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// RegisterMethods registers every planner method on r.
func (s *Service) RegisterMethods(r *Registry) {
	r.Register(MethodGetRebaseCommits, s.getRebaseCommits)
	r.Register(MethodExecuteInteractiveRebase, s.executeInteractiveRebase)
	r.Register(MethodPlanPreview, planPreview)
	r.Register(MethodPlanAutosquash, planAutosquash)
	r.Register(MethodPlanTodo, planTodo)
}

// NewServer returns a dispatcher with every planner method registered,
// panic recovery and request logging.
func NewServer(backend Backend) *Dispatcher {
	registry := NewRegistry()
	registry.Use(LogRequests())
	registry.Use(Recover())
	NewService(backend).RegisterMethods(registry)
	return NewDispatcher(registry)
}

func (s *Service) getRebaseCommits(ctx context.Context, raw json.RawMessage) (interface{}, *Error) {
	var params GetRebaseCommitsParams
	if len(raw) > 0 {
		if rpcErr := decodeParams(raw, &params); rpcErr != nil {
			return nil, rpcErr
		}
	}

	result, err := s.backend.GetRebaseCommits(ctx, params)
	if err != nil {
		rpcErr := FromError(err)
		switch rpcErr.Code {
		case NotAGitRepo:
			rpcErr = ErrNotAGitRepo(params.Path)
		case InternalError:
			rpcErr = NewErrorWithData(GitOperationFailed, err.Error(), map[string]string{
				"operation": MethodGetRebaseCommits,
			})
		}
		return nil, rpcErr
	}
	return result, nil
}

func (s *Service) executeInteractiveRebase(ctx context.Context, raw json.RawMessage) (interface{}, *Error) {
	var params ExecuteInteractiveRebaseParams
	if rpcErr := decodeParams(raw, &params); rpcErr != nil {
		return nil, rpcErr
	}
	if strings.TrimSpace(params.TodoScript) == "" {
		return nil, ErrInvalidParams("todoScript is required")
	}
	if params.TodoFile == "" {
		return nil, ErrInvalidParams("todoFile is required")
	}

	result, err := s.backend.ExecuteInteractiveRebase(ctx, params)
	if err != nil {
		return nil, FromError(err)
	}
	return result, nil
}

func planPreview(_ context.Context, raw json.RawMessage) (interface{}, *Error) {
	p, rpcErr := decodePlan(raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return PreviewResult{
		Preview:    p.Preview(),
		Stats:      p.Stats(),
		HasErrors:  p.HasValidationErrors(),
		CanExecute: p.CanExecute(),
	}, nil
}

func planAutosquash(_ context.Context, raw json.RawMessage) (interface{}, *Error) {
	p, rpcErr := decodePlan(raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	unmatched := p.ApplyAutosquash()
	return AutosquashResult{Commits: p.Commits, Unmatched: unmatched}, nil
}

func planTodo(_ context.Context, raw json.RawMessage) (interface{}, *Error) {
	p, rpcErr := decodePlan(raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	todo, err := p.Todo()
	if err != nil {
		return nil, FromError(err)
	}
	return TodoResult{Todo: todo}, nil
}

func decodeParams(raw json.RawMessage, v interface{}) *Error {
	if len(raw) == 0 {
		return ErrInvalidParams("params are required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		if errors.Is(err, rebase.ErrUnknownAction) {
			return FromError(err)
		}
		return ErrInvalidParams(err.Error())
	}
	return nil
}

func decodePlan(raw json.RawMessage) (*plan.Plan, *Error) {
	var params PlanParams
	if rpcErr := decodeParams(raw, &params); rpcErr != nil {
		return nil, rpcErr
	}

	p := plan.New("", "", params.Commits)
	if err := p.Normalize(); err != nil {
		return nil, FromError(err)
	}
	return p, nil
}
