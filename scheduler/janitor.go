package scheduler

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/colorix/api/datastore"
)

// Janitor periodically removes sessions that have been idle too long.
type Janitor struct {
	SessionRepo datastore.SessionRepository
	IdleTimeout time.Duration
	Interval    time.Duration
	// OnExpired, when set, receives the ids removed by each sweep.
	OnExpired func(ids []string)
	Logger    *slog.Logger

	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

const (
	DefaultIdleTimeout   = 2 * time.Hour
	DefaultSweepInterval = 5 * time.Minute
)

// NewJanitor builds a janitor. Non-positive durations fall back to
// DefaultIdleTimeout and DefaultSweepInterval.
func NewJanitor(repo datastore.SessionRepository, idleTimeout, interval time.Duration, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if idleTimeout <= 0 {
		logger.Warn("invalid session idle timeout, using default", "idle_timeout", idleTimeout, "default", DefaultIdleTimeout)
		idleTimeout = DefaultIdleTimeout
	}
	if interval <= 0 {
		logger.Warn("invalid session sweep interval, using default", "interval", interval, "default", DefaultSweepInterval)
		interval = DefaultSweepInterval
	}
	return &Janitor{
		SessionRepo: repo,
		IdleTimeout: idleTimeout,
		Interval:    interval,
		Logger:      logger,
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// Start sweeps every Interval until Stop is called.
func (j *Janitor) Start() {
	j.ticker = time.NewTicker(j.Interval)
	j.Logger.Info("session janitor started", "interval", j.Interval, "idle_timeout", j.IdleTimeout)

	go func(ticker *time.Ticker) {
		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-j.done:
				return
			}
		}
	}(j.ticker)
}

// Stop stops the janitor. It is safe to call more than once.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		if j.ticker != nil {
			j.ticker.Stop()
		}
		close(j.done)
		j.Logger.Info("session janitor stopped")
	})
}

// Sweep removes idle sessions once and returns how many were removed.
func (j *Janitor) Sweep() (int, error) {
	cutoff := j.now().Add(-j.IdleTimeout)

	removed, err := j.SessionRepo.DeleteIdleSince(cutoff)
	if err != nil {
		j.Logger.Error("error expiring idle sessions", "error", err)
		return 0, err
	}

	if len(removed) > 0 {
		if j.OnExpired != nil {
			j.OnExpired(removed)
		}
		j.Logger.Info("expired idle sessions", "count", len(removed), "remaining", j.SessionRepo.Count())
	}

	return len(removed), nil
}
