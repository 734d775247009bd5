package grpc

import (
	"context"
	"time"
)

// Probe runs check every interval until ctx is done and reports the result
// as the serving status. The first check runs immediately.
func (s *HealthServer) Probe(ctx context.Context, interval time.Duration, check func(context.Context) error) {
	serving := false
	run := func() {
		err := check(ctx)
		if ok := err == nil; ok != serving {
			serving = ok
			if ok {
				s.logger.Info(ctx, "health check passing")
			} else {
				s.logger.Warn(ctx, "health check failing", "error", err)
			}
		}
		s.SetServing(serving)
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
