package core

// streaming.go wraps the upload body while it is buffered for decoding.
//
// Workbooks are zip or OLE containers and have to be fully in memory before
// a decoder can look at them, so the readers here only bound and observe the
// copy:
//
//   - ContextReader stops reading once the upload context ends
//   - CountingReader tracks bytes read for metrics and logs
//
// ReadAllLimited combines both and enforces the size limit.

import (
	"context"
	"fmt"
	"io"
)

// ContextReader fails reads with ctx.Err() after ctx is done.
type ContextReader struct {
	ctx    context.Context
	reader io.Reader
}

// NewContextReader wraps r so that reads observe ctx.
func NewContextReader(ctx context.Context, r io.Reader) *ContextReader {
	return &ContextReader{ctx: ctx, reader: r}
}

// Read implements io.Reader.
func (r *ContextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.reader.Read(p)
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// ReadAllLimited buffers r until EOF. It fails with ErrFileTooLarge once more
// than limit bytes arrive and with ctx.Err() if ctx ends first. The returned
// count is the number of bytes consumed, including any over the limit.
func ReadAllLimited(ctx context.Context, r io.Reader, limit int64) ([]byte, int64, error) {
	counter := NewCountingReader(NewContextReader(ctx, r))

	data, err := io.ReadAll(io.LimitReader(counter, limit+1))
	if err != nil {
		return nil, counter.BytesRead, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, counter.BytesRead, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	return data, counter.BytesRead, nil
}
