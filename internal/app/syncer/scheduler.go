package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Handle owns one recurring job's timer. Start runs the job immediately and
// then on the interval; starting while running replaces the interval, and
// Stop is idempotent. Stopping only clears the timer; an in-flight run is
// not interrupted and completes on its own.
type Handle struct {
	name   string
	job    func(context.Context) error
	logger *slog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	interval time.Duration
}

func NewHandle(name string, job func(context.Context) error, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{name: name, job: job, logger: logger}
}

func (h *Handle) Start(interval time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.interval = interval

	h.logger.Info("automation started", "job", h.name, "interval", interval)
	go h.run(ctx, interval)
}

func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel == nil {
		return
	}
	h.cancel()
	h.cancel = nil
	h.interval = 0
	h.logger.Info("automation stopped", "job", h.name)
}

func (h *Handle) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}

func (h *Handle) Interval() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interval
}

func (h *Handle) run(ctx context.Context, interval time.Duration) {
	h.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.runOnce(ctx)
		}
	}
}

// runOnce detaches the job from the timer's cancellation so Stop clears the
// schedule without aborting a run already underway. A failed run is logged;
// the next tick still fires.
func (h *Handle) runOnce(ctx context.Context) {
	if err := h.job(context.WithoutCancel(ctx)); err != nil {
		h.logger.Error("scheduled run failed", "job", h.name, "error", err)
	}
}
