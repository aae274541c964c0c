package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultJanitorInterval = time.Minute

// RunJanitor sweeps expired login states, consumed codes and sessions every interval
// until ctx is cancelled.
func (s *Server) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one janitor pass.
func (s *Server) Sweep(ctx context.Context) {
	if removed := s.authState.DeleteExpired(time.Now()); removed > 0 {
		log.Debug().Int("removed", removed).Msg("Swept expired login states")
	}
	if s.ledger != nil {
		s.ledger.Cleanup()
	}
	s.sessions.Sweep(ctx)
}
