package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSuperseded is reported by an upload whose table was discarded
	// because a newer upload was started in the same session.
	ErrSuperseded = errors.New("upload superseded by a newer upload")

	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file provided")

	// ErrFileTooLarge is returned when a file exceeds Options.MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

// Default service settings, used when an Options field is zero.
const (
	DefaultMaxFileSize   int64 = 10 << 20
	DefaultUploadTimeout       = 45 * time.Second
	DefaultSessionTTL          = 2 * time.Hour
)

// Recorder receives service events for metrics. All methods must be safe for
// concurrent use.
type Recorder interface {
	UploadFinished(result string, bytes int64, parse time.Duration)
	SessionsActive(n int)
}

type nopRecorder struct{}

func (nopRecorder) UploadFinished(string, int64, time.Duration) {}
func (nopRecorder) SessionsActive(int)                          {}

// Options configures a Service.
type Options struct {
	MaxConcurrentUploads int
	MaxUploadWait        time.Duration
	MaxFileSize          int64
	UploadTimeout        time.Duration
	SessionTTL           time.Duration
	Recorder             Recorder
}

// Service owns every browser session and the upload pipeline that feeds them.
type Service struct {
	limiter       *UploadLimiter
	recorder      Recorder
	maxFileSize   int64
	uploadTimeout time.Duration
	sessionTTL    time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	inflight sync.WaitGroup
	now      func() time.Time
}

type session struct {
	model    *viewmodel.Model
	lastSeen atomic.Int64
}

func (s *session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// NewService creates a Service with no sessions.
func NewService(opts Options) *Service {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	return &Service{
		limiter:       NewUploadLimiter(opts.MaxConcurrentUploads, opts.MaxUploadWait),
		recorder:      opts.Recorder,
		maxFileSize:   opts.MaxFileSize,
		uploadTimeout: opts.UploadTimeout,
		sessionTTL:    opts.SessionTTL,
		sessions:      make(map[uuid.UUID]*session),
		now:           time.Now,
	}
}

// NewSession registers an empty session and returns its id.
func (s *Service) NewSession() uuid.UUID {
	id := uuid.New()
	sess := &session{model: viewmodel.NewModel()}
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.recorder.SessionsActive(n)
	return id
}

// Session returns the model for id and marks the session as used.
func (s *Service) Session(id uuid.UUID) (*viewmodel.Model, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.model, nil
}

func (s *Service) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

// EndSession drops a session. Uploads still running for it finish but
// their results go nowhere.
func (s *Service) EndSession(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	s.recorder.SessionsActive(n)
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MaxFileSize returns the largest accepted upload in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// LimiterStatus reports upload slot usage.
func (s *Service) LimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until every started upload has finished or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
