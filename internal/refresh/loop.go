// Package refresh drives the display: it polls a telemetry source at the
// refresh rate, derives a Display from each snapshot and fans the result out
// to subscribers.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/unklstewy/gcs-pfd/internal/metrics"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// ErrNotReady is returned by Current before the first tick completed.
var ErrNotReady = errors.New("display not derived yet")

// Config controls the refresh loop.
type Config struct {
	// Interval is the time between ticks.
	Interval time.Duration

	// Retry is the backoff applied to source reads within one tick.
	Retry telemetry.RetryConfig

	// Context holds the operator display preferences.
	Context pfd.Context
}

// Option customizes a Loop.
type Option func(*Loop)

// WithMetrics records tick outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loop) { l.metrics = m }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// Loop refreshes the display from a telemetry source.
type Loop struct {
	source  telemetry.Source
	cfg     Config
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current *pfd.Display
	lastErr error
	subs    map[int]chan *pfd.Display
	nextSub int
}

// New creates a loop. It does nothing until Run or Tick is called.
func New(source telemetry.Source, cfg Config, opts ...Option) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = 200 * time.Millisecond
	}
	l := &Loop{
		source:  source,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.Interval), 1),
		logger:  slog.Default(),
		now:     time.Now,
		lastErr: ErrNotReady,
		subs:    make(map[int]chan *pfd.Display),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run ticks at the configured interval until ctx is cancelled.
// Tick failures are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("display refresh started", "interval", l.cfg.Interval)
	defer l.logger.Info("display refresh stopped")

	for {
		if err := l.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("refresh limiter: %w", err)
		}

		if _, err := l.Tick(ctx); err != nil && ctx.Err() == nil {
			l.logger.Warn("display refresh failed", "error", err)
		}
	}
}

// Tick reads one snapshot and derives its display. On failure the previous
// display is kept and the error is reported by Current.
func (l *Loop) Tick(ctx context.Context) (*pfd.Display, error) {
	if l.metrics != nil {
		l.metrics.Tick()
	}

	snap, err := telemetry.PollWithBackoff(ctx, l.cfg.Retry, l.source)
	if err != nil {
		if l.metrics != nil {
			l.metrics.SourceError()
		}
		err = fmt.Errorf("read telemetry: %w", err)
		l.setError(err)
		return nil, err
	}

	start := l.now()
	display, err := pfd.Derive(snap, l.cfg.Context)
	if err != nil {
		if l.metrics != nil {
			l.metrics.DerivationError(err)
		}
		l.setError(err)
		return nil, err
	}
	if l.metrics != nil {
		now := l.now()
		l.metrics.Derived(snap.Timestamp, now, now.Sub(start))
	}

	l.publish(display)
	return display, nil
}

// Current returns the last derived display together with the error of the
// last tick. The display may be non-nil while the error is set when a
// later tick failed.
func (l *Loop) Current() (*pfd.Display, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.lastErr
}

// Subscribe returns a channel receiving every new display and a function
// that ends the subscription. A slow subscriber only sees the newest display.
func (l *Loop) Subscribe() (<-chan *pfd.Display, func()) {
	ch := make(chan *pfd.Display, 1)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
}

func (l *Loop) setError(err error) {
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()
}

func (l *Loop) publish(display *pfd.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = display
	l.lastErr = nil

	for _, ch := range l.subs {
		// Drop the stale value so the send never blocks.
		select {
		case <-ch:
		default:
		}
		ch <- display
	}
}
