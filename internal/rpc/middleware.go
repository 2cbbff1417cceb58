package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// LogRequests logs each call with its duration and, for failures, the
// error code.
func LogRequests() MiddlewareFunc {
	return func(method string, next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, params json.RawMessage) (interface{}, *Error) {
			start := time.Now()
			result, rpcErr := next(ctx, params)

			event := log.Debug().
				Str("method", method).
				Dur("elapsed", time.Since(start))
			if rpcErr != nil {
				event = event.
					Int("code", rpcErr.Code).
					Str("code_name", ErrorCodeName(rpcErr.Code)).
					Str("error", rpcErr.Message)
			}
			event.Msg("handled request")

			return result, rpcErr
		}
	}
}

// Recover turns a panic in a handler into an InternalError response.
func Recover() MiddlewareFunc {
	return func(method string, next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, params json.RawMessage) (result interface{}, rpcErr *Error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("method", method).
						Interface("panic", r).
						Msg("handler panicked")
					result, rpcErr = nil, ErrInternalError(fmt.Sprintf("%s: handler panicked", method))
				}
			}()
			return next(ctx, params)
		}
	}
}
