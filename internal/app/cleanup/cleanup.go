package cleanup

import (
	"context"
	"simpleauth/internal/app/deps"
	"simpleauth/internal/app/services"
	dl "simpleauth/internal/core/domain/logging"
	deleteexpiredcodes "simpleauth/internal/core/services/delete_expired_codes"
	"time"
)

// Start runs the expired-code sweep on a ticker until the returned stop
// function is called. The sweep is housekeeping only: activation checks
// expiry itself, so a missed tick never lets a stale code through.
func Start(deps *deps.Deps, s *services.Services) func() {
	ticker := time.NewTicker(deps.Config.CodeCleanupInterval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				result, err := s.DeleteExpiredCodes.Run(context.Background(), deleteexpiredcodes.Input{})
				if err != nil {
					deps.Logger.Error(
						context.Background(),
						"Could not delete expired activation codes.",
						dl.Entry("err", err),
					)
					continue
				}
				if result.Count > 0 {
					deps.Logger.Info(
						context.Background(),
						"Expired activation codes deleted.",
						dl.Entry("count", result.Count),
					)
				}
			}
		}
	}()

	deps.Logger.Info(
		context.Background(),
		"Activation code cleanup has started.",
		dl.Entry("interval", deps.Config.CodeCleanupInterval),
	)

	return func() {
		ticker.Stop()
		close(done)
	}
}
