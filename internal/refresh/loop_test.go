package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/unklstewy/gcs-pfd/internal/metrics"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry/telemetrytest"
)

// fakeSource serves a fixed snapshot or error and counts reads.
type fakeSource struct {
	snap  *telemetry.Snapshot
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Latest(ctx context.Context) (*telemetry.Snapshot, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func testConfig() Config {
	return Config{
		Interval: 5 * time.Millisecond,
		Retry:    telemetry.RetryConfig{MaxRetries: 0, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2},
		Context:  pfd.DefaultContext(),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoopCurrentBeforeTick(t *testing.T) {
	l := New(&fakeSource{}, testConfig(), WithLogger(quietLogger()))
	d, err := l.Current()
	if d != nil || !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected nil display and ErrNotReady, got %v, %v", d, err)
	}
}

func TestLoopTick(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	src := &fakeSource{snap: telemetrytest.FlyingQuad()}
	l := New(src, testConfig(), WithMetrics(m), WithLogger(quietLogger()))

	d, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if d.Mode.FlightMode != "POS HOLD" {
		t.Errorf("Expected POS HOLD, got %s", d.Mode.FlightMode)
	}

	cur, err := l.Current()
	if err != nil || cur != d {
		t.Errorf("Expected current display to be the ticked one, got %v, %v", cur, err)
	}

	if n, err := testutil.GatherAndCount(reg, "pfd_ticks_total"); err != nil || n != 1 {
		t.Errorf("Expected ticks metric, got %d (%v)", n, err)
	}
}

func TestLoopTickSourceError(t *testing.T) {
	src := &fakeSource{snap: telemetrytest.FlyingQuad()}
	l := New(src, testConfig(), WithLogger(quietLogger()))

	good, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("First tick failed: %v", err)
	}

	src.err = errors.New("link down")
	if _, err := l.Tick(context.Background()); err == nil {
		t.Fatal("Expected source error")
	}

	// The last good display is kept alongside the error.
	cur, err := l.Current()
	if cur != good {
		t.Error("Expected previous display to be kept")
	}
	if err == nil {
		t.Error("Expected Current to report the failed tick")
	}
}

func TestLoopTickDerivationError(t *testing.T) {
	snap := telemetrytest.FlyingQuad()
	snap.GPS = nil
	l := New(&fakeSource{snap: snap}, testConfig(), WithLogger(quietLogger()))

	_, err := l.Tick(context.Background())
	mte, ok := telemetry.IsMissingTelemetry(err)
	if !ok {
		t.Fatalf("Expected MissingTelemetryError, got %v", err)
	}
	if mte.Record != telemetry.RecordGPSPositionSensor {
		t.Errorf("Expected missing %s, got %s", telemetry.RecordGPSPositionSensor, mte.Record)
	}
}

func TestLoopSubscribe(t *testing.T) {
	l := New(&fakeSource{snap: telemetrytest.FlyingQuad()}, testConfig(), WithLogger(quietLogger()))

	ch, cancel := l.Subscribe()

	// Two ticks without reading: the subscriber only keeps the newest.
	if _, err := l.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	second, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	select {
	case d := <-ch:
		if d != second {
			t.Error("Expected newest display")
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a display on the subscription")
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("Expected channel to be closed after cancel")
	}

	// Publishing after unsubscribe must not panic.
	if _, err := l.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
}

func TestLoopRun(t *testing.T) {
	src := &fakeSource{snap: telemetrytest.FlyingQuad()}
	l := New(src, testConfig(), WithLogger(quietLogger()))
	ch, cancel := l.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for display #%d", i)
		}
	}

	stop()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if src.calls.Load() < 3 {
		t.Errorf("Expected at least 3 source reads, got %d", src.calls.Load())
	}
}
