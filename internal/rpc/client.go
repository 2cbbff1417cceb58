package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
)

// Invoker is the single call surface between a host and the planner.
type Invoker interface {
	Invoke(ctx context.Context, method string, params interface{}) (json.RawMessage, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, method string, params interface{}) (json.RawMessage, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	return f(ctx, method, params)
}

// InProcess returns an Invoker that dispatches requests directly, still
// going through the JSON encoding a remote caller would see.
func InProcess(d *Dispatcher) Invoker {
	var mu sync.Mutex
	var next int64

	return InvokerFunc(func(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
		mu.Lock()
		next++
		id := next
		mu.Unlock()

		req, err := NewRequest(NumberID(id), method, params)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}

		out, err := d.DispatchBytes(ctx, data)
		if err != nil {
			return nil, err
		}
		return decodeResponse(out)
	})
}

// StreamInvoker speaks newline-delimited JSON-RPC to a planner running in
// another process, typically over the pipes of `rebaseplan serve`.
type StreamInvoker struct {
	mu     sync.Mutex
	reader *bufio.Reader
	writer io.Writer
	next   int64
}

// NewStreamInvoker creates an invoker that writes requests to w and reads
// responses from r.
func NewStreamInvoker(r io.Reader, w io.Writer) *StreamInvoker {
	return &StreamInvoker{reader: bufio.NewReader(r), writer: w}
}

// Invoke sends one request and waits for its response. Calls are
// serialized; responses with other ids are discarded.
func (s *StreamInvoker) Invoke(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := NumberID(s.next)

	req, err := NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	if _, err := s.writer.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	for {
		line, err := s.reader.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			resp, perr := ParseResponse(line)
			if perr != nil {
				return nil, fmt.Errorf("parsing response: %w", perr)
			}
			if resp.ID.Equal(id) || resp.ID == nil {
				return unwrapResponse(resp)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
	}
}

func decodeResponse(data []byte) (json.RawMessage, error) {
	resp, err := ParseResponse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return unwrapResponse(resp)
}

func unwrapResponse(resp *Response) (json.RawMessage, error) {
	if resp.IsError() {
		return nil, resp.Error
	}
	return resp.Result, nil
}

// Client makes typed planner calls over an Invoker.
type Client struct {
	invoker Invoker
}

// NewClient creates a client over the given invoker.
func NewClient(invoker Invoker) *Client {
	return &Client{invoker: invoker}
}

// GetRebaseCommits loads a plan from the backend.
func (c *Client) GetRebaseCommits(ctx context.Context, params GetRebaseCommitsParams) (*GetRebaseCommitsResult, error) {
	var result GetRebaseCommitsResult
	if err := c.call(ctx, MethodGetRebaseCommits, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExecuteInteractiveRebase hands a todo script to the backend.
func (c *Client) ExecuteInteractiveRebase(ctx context.Context, params ExecuteInteractiveRebaseParams) (*ExecuteInteractiveRebaseResult, error) {
	var result ExecuteInteractiveRebaseResult
	if err := c.call(ctx, MethodExecuteInteractiveRebase, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Preview returns the projected history of commits.
func (c *Client) Preview(ctx context.Context, commits []rebase.EditableCommit) (*PreviewResult, error) {
	var result PreviewResult
	if err := c.call(ctx, MethodPlanPreview, PlanParams{Commits: commits}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Autosquash rearranges commits for autosquash.
func (c *Client) Autosquash(ctx context.Context, commits []rebase.EditableCommit) (*AutosquashResult, error) {
	var result AutosquashResult
	if err := c.call(ctx, MethodPlanAutosquash, PlanParams{Commits: commits}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Todo serializes commits into a todo script.
func (c *Client) Todo(ctx context.Context, commits []rebase.EditableCommit) (string, error) {
	var result TodoResult
	if err := c.call(ctx, MethodPlanTodo, PlanParams{Commits: commits}, &result); err != nil {
		return "", err
	}
	return result.Todo, nil
}

func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	raw, err := c.invoker.Invoke(ctx, method, params)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%s: decoding result: %w", method, err)
	}
	return nil
}
