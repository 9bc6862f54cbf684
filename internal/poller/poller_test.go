package poller

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/waitgate/internal/endpoint"
	"github.com/hamed0406/waitgate/internal/probe"
)

// fake prober you can script; the last result repeats forever.
type fakeProber struct {
	results []probe.Result
	calls   int
}

func (f *fakeProber) Probe(ctx context.Context, ep endpoint.Endpoint) probe.Result {
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]
}

func TestWait_ImmediateOpenDoesNotSleep(t *testing.T) {
	f := &fakeProber{results: []probe.Result{{Outcome: probe.Open}}}
	p := New(f, zap.NewNop())

	start := time.Now()
	res := p.Wait(context.Background(), endpoint.Parse("tcp://db:5432"), 5*time.Second)
	if !res.Up {
		t.Fatalf("want Up, got %+v", res)
	}
	if f.calls != 1 {
		t.Fatalf("want exactly 1 probe, got %d", f.calls)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("open endpoint should return without sleeping, took %v", elapsed)
	}
}

func TestWait_InvalidFailsWithoutBurningBudget(t *testing.T) {
	f := &fakeProber{results: []probe.Result{{Outcome: probe.Invalid, Reason: "unsupported protocol http"}}}
	p := New(f, zap.NewNop())

	start := time.Now()
	res := p.Wait(context.Background(), endpoint.Parse("http://db:80"), 30*time.Second)
	if res.Up {
		t.Fatalf("want failure, got %+v", res)
	}
	if res.Reason == "" {
		t.Fatalf("want reason to carry the probe's verdict")
	}
	if f.calls != 1 {
		t.Fatalf("want exactly 1 probe, got %d", f.calls)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("invalid endpoint should fail immediately, took %v", elapsed)
	}
}

func TestWait_RetriesUntilOpen(t *testing.T) {
	f := &fakeProber{results: []probe.Result{
		{Outcome: probe.Closed, Reason: "connection refused"},
		{Outcome: probe.Closed, Reason: "connection refused"},
		{Outcome: probe.Open},
	}}
	p := New(f, zap.NewNop())
	p.Interval = 20 * time.Millisecond

	res := p.Wait(context.Background(), endpoint.Parse("tcp://db:5432"), time.Second)
	if !res.Up {
		t.Fatalf("want Up after retries, got %+v", res)
	}
	if f.calls != 3 {
		t.Fatalf("want 3 probes, got %d", f.calls)
	}
}

func TestWait_TimesOutNearBudget(t *testing.T) {
	f := &fakeProber{results: []probe.Result{{Outcome: probe.Closed, Reason: "connection refused"}}}
	p := New(f, zap.NewNop())
	p.Interval = 50 * time.Millisecond

	budget := 300 * time.Millisecond
	start := time.Now()
	res := p.Wait(context.Background(), endpoint.Parse("tcp://db:5432"), budget)
	elapsed := time.Since(start)

	if res.Up {
		t.Fatalf("want timeout, got %+v", res)
	}
	if !strings.Contains(res.Reason, "timed out") {
		t.Fatalf("want a timeout reason, got %q", res.Reason)
	}
	if elapsed < budget {
		t.Fatalf("returned after %v, before the %v budget", elapsed, budget)
	}
	if elapsed > 4*budget {
		t.Fatalf("returned after %v, far past the %v budget", elapsed, budget)
	}
}

func TestWait_CancelledContextEndsEarly(t *testing.T) {
	f := &fakeProber{results: []probe.Result{{Outcome: probe.Closed, Reason: "connection refused"}}}
	p := New(f, zap.NewNop())
	p.Interval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	res := p.Wait(ctx, endpoint.Parse("tcp://db:5432"), 10*time.Second)
	if res.Up {
		t.Fatalf("want failure on cancellation, got %+v", res)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation should end the wait quickly, took %v", elapsed)
	}
}
