package rpc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// Serve reads newline-delimited JSON-RPC messages from r and writes each
// response to w on its own line. It returns nil when r reaches EOF.
//
// Cancelling ctx makes Serve return ctx.Err() right away, even while a read
// is blocked. If r is an io.Closer it is closed so the pending read ends.
func Serve(ctx context.Context, d *Dispatcher, r io.Reader, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		closeReader(r)
		return err
	}

	writer := &lineWriter{w: w}
	log.Debug().Strs("methods", d.Registry().Methods()).Msg("serving json-rpc on stdio")

	reads := make(chan readResult)
	go readLines(ctx, bufio.NewReader(r), reads)

	for {
		var res readResult
		select {
		case <-ctx.Done():
			closeReader(r)
			return ctx.Err()
		case res = <-reads:
		}

		if line := bytes.TrimSpace(res.line); len(line) > 0 {
			resp, err := d.HandleMessage(ctx, line)
			if err != nil {
				return fmt.Errorf("handling message: %w", err)
			}
			if resp != nil {
				if err := writer.WriteLine(resp); err != nil {
					return fmt.Errorf("writing response: %w", err)
				}
			}
		}

		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading request: %w", res.err)
		}
	}
}

func closeReader(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

type readResult struct {
	line []byte
	err  error
}

// readLines feeds Serve until the reader fails or ctx is done.
func readLines(ctx context.Context, reader *bufio.Reader, out chan<- readResult) {
	for {
		line, err := reader.ReadBytes('\n')
		select {
		case out <- readResult{line: line, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// lineWriter frames messages with a trailing newline.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lineWriter) WriteLine(data []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	_, err := lw.w.Write(buf)
	return err
}
