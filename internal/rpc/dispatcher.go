package rpc

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Dispatcher routes JSON-RPC requests to registered handlers.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a new dispatcher with the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch handles a JSON-RPC request and returns a response.
// Returns nil for notifications (requests without ID). Per-call logging is
// left to middleware; see LogRequests.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	handler := d.registry.Get(req.Method)
	if handler == nil {
		log.Warn().Str("method", req.Method).Msg("method not found")
		if req.IsNotification() {
			return nil
		}
		return NewErrorResponse(req.ID, ErrMethodNotFound(req.Method))
	}

	result, rpcErr := handler(ctx, req.Params)

	if req.IsNotification() {
		if rpcErr != nil {
			log.Warn().
				Str("method", req.Method).
				Int("code", rpcErr.Code).
				Str("error", rpcErr.Message).
				Msg("notification handler error (not sent to client)")
		}
		return nil
	}

	if rpcErr != nil {
		return NewErrorResponse(req.ID, rpcErr)
	}

	resp, err := NewSuccessResponse(req.ID, result)
	if err != nil {
		log.Error().
			Str("method", req.Method).
			Err(err).
			Msg("failed to marshal response")
		return NewErrorResponse(req.ID, ErrInternalError("failed to marshal response"))
	}

	return resp
}

// DispatchBytes parses and dispatches a single request.
// Returns the response bytes, or nil for notifications.
func (d *Dispatcher) DispatchBytes(ctx context.Context, data []byte) ([]byte, error) {
	req, err := ParseRequest(data)
	if err != nil {
		log.Debug().Err(err).Msg("failed to parse request")
		return json.Marshal(NewErrorResponse(nil, ErrParseError(err.Error())))
	}

	resp := d.Dispatch(ctx, req)
	if resp == nil {
		return nil, nil
	}
	return json.Marshal(resp)
}

// HandleMessage handles a single request or a batch.
func (d *Dispatcher) HandleMessage(ctx context.Context, data []byte) ([]byte, error) {
	if len(data) > 0 && data[0] == '[' {
		return d.handleBatch(ctx, data)
	}
	return d.DispatchBytes(ctx, data)
}

func (d *Dispatcher) handleBatch(ctx context.Context, data []byte) ([]byte, error) {
	var rawRequests []json.RawMessage
	if err := json.Unmarshal(data, &rawRequests); err != nil {
		return json.Marshal(NewErrorResponse(nil, ErrParseError("Invalid batch request")))
	}

	if len(rawRequests) == 0 {
		return json.Marshal(NewErrorResponse(nil, ErrInvalidRequest("Empty batch")))
	}

	responses := make([]*Response, 0, len(rawRequests))
	for _, rawReq := range rawRequests {
		req, err := ParseRequest(rawReq)
		if err != nil {
			responses = append(responses, NewErrorResponse(nil, ErrParseError(err.Error())))
			continue
		}

		if resp := d.Dispatch(ctx, req); resp != nil {
			responses = append(responses, resp)
		}
	}

	// all notifications
	if len(responses) == 0 {
		return nil, nil
	}

	return json.Marshal(responses)
}
