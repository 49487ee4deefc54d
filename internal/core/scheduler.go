package core

// scheduler.go runs background maintenance for the session store.
//
// Sessions live only in memory. The sweeper drops every session that has not
// been touched for the configured TTL so abandoned browser tabs do not pin
// their tables forever. It stops when its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when RunSessionSweeper gets a non-positive interval.
const DefaultSweepInterval = time.Minute

// RunSessionSweeper removes idle sessions every interval until ctx is done.
func (s *Service) RunSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started",
		"interval", interval.String(),
		"ttl", s.sessionTTL.String(),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.SweepIdle(); n > 0 {
				slog.Info("expired idle sessions", "expired", n, "remaining", s.SessionCount())
			}
		}
	}
}

// SweepIdle drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Service) SweepIdle() int {
	cutoff := s.now().Add(-s.sessionTTL).UnixNano()

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.recorder.SessionsActive(n)
	}
	return removed
}
