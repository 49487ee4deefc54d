package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/ledgerview/internal/logging"
	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

// Upload results as reported to the Recorder.
const (
	ResultApplied    = "applied"
	ResultSuperseded = "superseded"
	ResultFailed     = "failed"
	ResultRejected   = "rejected"
)

// UploadResult describes how an upload ended.
type UploadResult struct {
	Generation viewmodel.Generation `json:"generation"`
	FileName   string               `json:"fileName"`
	Applied    bool                 `json:"applied"`
	Rows       int                  `json:"rows"`
	Bytes      int64                `json:"bytes"`
	Err        error                `json:"-"`
}

// UploadTicket tracks one upload running in the background.
type UploadTicket struct {
	gen    viewmodel.Generation
	done   chan struct{}
	result UploadResult
}

// Generation returns the generation reserved for this upload.
func (t *UploadTicket) Generation() viewmodel.Generation {
	return t.gen
}

// Done is closed when the upload has finished.
func (t *UploadTicket) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the upload finishes.
func (t *UploadTicket) Result() UploadResult {
	<-t.done
	return t.result
}

// Wait is Result bounded by ctx. The returned error is the upload's error,
// or ctx.Err() when ctx ends first.
func (t *UploadTicket) Wait(ctx context.Context) (UploadResult, error) {
	select {
	case <-t.done:
		return t.result, t.result.Err
	case <-ctx.Done():
		return UploadResult{Generation: t.gen}, ctx.Err()
	}
}

// Upload reserves the next generation in the session and reads, decodes and
// installs the workbook in the background. r must stay readable until the
// ticket is done. The table is installed only if no newer upload was started
// in the meantime; otherwise the result carries ErrSuperseded.
//
// A failed upload leaves the session's current table untouched.
func (s *Service) Upload(ctx context.Context, id uuid.UUID, fileName string, r io.Reader) (*UploadTicket, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	gen := sess.model.BeginUpload()
	ticket := &UploadTicket{
		gen:  gen,
		done: make(chan struct{}),
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	logger := logging.WithFields(ctx,
		"session_id", id.String(),
		"generation", uint64(gen),
		"file", fileName,
	)
	if ip := GetIPAddressFromContext(ctx); ip != "" {
		logger = logger.With("client_ip", ip)
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()
		defer close(ticket.done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in upload", "panic", r)
				ticket.result = UploadResult{
					Generation: gen,
					FileName:   fileName,
					Err:        fmt.Errorf("internal error: %v", r),
				}
				s.recorder.UploadFinished(ResultFailed, 0, 0)
			}
		}()
		ticket.result = s.processUpload(uploadCtx, logger, sess.model, gen, fileName, r)
	}()

	return ticket, nil
}

func (s *Service) processUpload(ctx context.Context, logger *slog.Logger, model *viewmodel.Model, gen viewmodel.Generation, fileName string, r io.Reader) UploadResult {
	res := UploadResult{Generation: gen, FileName: fileName}

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("upload rejected", "error", err)
		res.Err = err
		s.recorder.UploadFinished(ResultRejected, 0, 0)
		return res
	}
	defer s.limiter.Release()

	data, n, err := ReadAllLimited(ctx, r, s.maxFileSize)
	res.Bytes = n
	if err != nil {
		logger.Warn("upload read failed", "error", err, "bytes", n)
		res.Err = err
		s.recorder.UploadFinished(ResultFailed, n, 0)
		return res
	}

	start := time.Now()
	table, err := sheet.Parse(data)
	elapsed := time.Since(start)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Warn("upload parse failed", "error", err, "duration_ms", elapsed.Milliseconds())
		res.Err = fmt.Errorf("parse workbook: %w", err)
		s.recorder.UploadFinished(ResultFailed, n, elapsed)
		return res
	}

	res.Rows = table.Len()
	if !model.Complete(gen, table) {
		logger.Debug("upload superseded", "latest", uint64(model.Latest()))
		res.Err = ErrSuperseded
		s.recorder.UploadFinished(ResultSuperseded, n, elapsed)
		return res
	}

	res.Applied = true
	s.recorder.UploadFinished(ResultApplied, n, elapsed)
	logger.Info("upload applied",
		"rows", res.Rows,
		"columns", len(table.Headers),
		"bytes", n,
		"duration_ms", elapsed.Milliseconds(),
	)
	return res
}

// IsSuperseded reports whether err only means a newer upload won.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
