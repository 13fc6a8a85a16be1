package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// HealthChecker pings a service.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// WaitHealthy calls Health until it succeeds, backing off between attempts.
// It returns the last error once attempts are used up.
func WaitHealthy(ctx context.Context, hc HealthChecker, attempts int, interval time.Duration, logger *zap.Logger) error {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var err error
	for failures := 0; failures < attempts; failures++ {
		if err = hc.Health(ctx); err == nil {
			logger.Info("driver service healthy", zap.Int("attempt", failures+1))
			return nil
		}
		if failures == attempts-1 {
			break
		}
		wait := calculateBackoff(failures, interval)
		logger.Warn("driver service unhealthy",
			zap.Int("attempt", failures+1),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("driver service unavailable after %d attempts: %w", attempts, err)
}

// calculateBackoff doubles interval per failure, capped at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
