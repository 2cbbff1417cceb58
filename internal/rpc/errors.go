package rpc

import (
	"encoding/json"
	"errors"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	gogit "github.com/go-git/go-git/v5"
)

// Standard JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Planner error codes, in the implementation-defined server error range.
const (
	NotAGitRepo        = -32030
	GitOperationFailed = -32031
	EmptyRange         = -32033

	InvalidPlan = -32040
	InvalidTodo = -32041
)

// sentinels maps planner codes back to the Go errors they were produced
// from, so errors.Is works on both sides of the wire.
var sentinels = map[int]error{
	NotAGitRepo: gogit.ErrRepositoryNotExists,
	EmptyRange:  git.ErrEmptyRange,
	InvalidPlan: plan.ErrInvalidPlan,
	InvalidTodo: rebase.ErrInvalidTodo,
}

// Error represents a JSON-RPC 2.0 error.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error associated with the code, if any.
func (e *Error) Unwrap() error {
	return sentinels[e.Code]
}

// NewError creates a new JSON-RPC error.
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithData creates a new JSON-RPC error with additional data.
func NewErrorWithData(code int, message string, data interface{}) *Error {
	err := &Error{
		Code:    code,
		Message: message,
	}

	if data != nil {
		if d, e := json.Marshal(data); e == nil {
			err.Data = d
		}
	}

	return err
}

// ErrParseError creates a parse error.
func ErrParseError(message string) *Error {
	if message == "" {
		message = "Parse error"
	}
	return NewError(ParseError, message)
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *Error {
	if message == "" {
		message = "Invalid Request"
	}
	return NewError(InvalidRequest, message)
}

// ErrMethodNotFound creates a method not found error.
func ErrMethodNotFound(method string) *Error {
	return NewError(MethodNotFound, "Method not found: "+method)
}

// ErrInvalidParams creates an invalid params error.
func ErrInvalidParams(message string) *Error {
	if message == "" {
		message = "Invalid params"
	}
	return NewError(InvalidParams, message)
}

// ErrInternalError creates an internal error.
func ErrInternalError(message string) *Error {
	if message == "" {
		message = "Internal error"
	}
	return NewError(InternalError, message)
}

// ErrNotAGitRepo creates a not a git repository error.
func ErrNotAGitRepo(path string) *Error {
	return NewErrorWithData(NotAGitRepo, "Not a git repository", map[string]string{
		"path": path,
	})
}

// FromError converts a Go error into the RPC error a client should see.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	switch {
	case errors.Is(err, gogit.ErrRepositoryNotExists):
		return NewError(NotAGitRepo, err.Error())
	case errors.Is(err, git.ErrEmptyRange):
		return NewError(EmptyRange, err.Error())
	case errors.Is(err, rebase.ErrInvalidTodo):
		return NewError(InvalidTodo, err.Error())
	case errors.Is(err, plan.ErrInvalidPlan),
		errors.Is(err, plan.ErrNotExecutable),
		errors.Is(err, rebase.ErrUnknownAction):
		return NewError(InvalidPlan, err.Error())
	default:
		return ErrInternalError(err.Error())
	}
}

// ErrorCodeName returns a human-readable name for an error code.
func ErrorCodeName(code int) string {
	switch code {
	case ParseError:
		return "ParseError"
	case InvalidRequest:
		return "InvalidRequest"
	case MethodNotFound:
		return "MethodNotFound"
	case InvalidParams:
		return "InvalidParams"
	case InternalError:
		return "InternalError"
	case NotAGitRepo:
		return "NotAGitRepo"
	case GitOperationFailed:
		return "GitOperationFailed"
	case EmptyRange:
		return "EmptyRange"
	case InvalidPlan:
		return "InvalidPlan"
	case InvalidTodo:
		return "InvalidTodo"
	default:
		return "UnknownError"
	}
}
