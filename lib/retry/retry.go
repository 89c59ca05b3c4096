package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/artie-labs/geosql/lib/jitter"
	"github.com/artie-labs/geosql/lib/logger"
)

type Config struct {
	jitterBaseMs   int
	jitterMaxMs    int
	maxAttempts    int
	isRetryableErr func(err error) bool
}

type NewConfigArgs struct {
	JitterBaseMs   int
	JitterMaxMs    int
	MaxAttempts    int
	IsRetryableErr func(err error) bool
}

func NewConfig(args NewConfigArgs) Config {
	isRetryableErr := args.IsRetryableErr
	if isRetryableErr == nil {
		isRetryableErr = func(_ error) bool { return true }
	}

	return Config{
		jitterBaseMs:   max(args.JitterBaseMs, 0),
		jitterMaxMs:    max(args.JitterMaxMs, 0),
		maxAttempts:    max(args.MaxAttempts, 1),
		isRetryableErr: isRetryableErr,
	}
}

func (c Config) sleep(ctx context.Context, attempt int, err error) error {
	sleepDuration := jitter.Jitter(c.jitterBaseMs, c.jitterMaxMs, attempt)
	logger.FromContext(ctx).Debug("An error occurred, retrying...",
		slog.Duration("sleep", sleepDuration),
		slog.Int("attemptsLeft", c.maxAttempts-attempt),
		slog.Any("err", err),
	)

	if sleepDuration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(sleepDuration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetries calls f until it succeeds, returns a non-retryable error, runs out of attempts or ctx is done.
func WithRetries[T any](ctx context.Context, cfg Config, f func(attempt int) (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			if sleepErr := cfg.sleep(ctx, attempt, err); sleepErr != nil {
				return result, err
			}
		}

		result, err = f(attempt)
		if err == nil {
			return result, nil
		} else if !cfg.isRetryableErr(err) {
			break
		}
	}
	return result, err
}
