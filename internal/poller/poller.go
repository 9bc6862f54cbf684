package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/waitgate/internal/endpoint"
	"github.com/hamed0406/waitgate/internal/probe"
)

// DefaultInterval is the pause between consecutive probes of one endpoint.
const DefaultInterval = time.Second

// Result is the terminal outcome of polling one endpoint.
type Result struct {
	Endpoint endpoint.Endpoint
	Up       bool
	Elapsed  time.Duration
	Reason   string // why the endpoint never came up; empty when Up
}

// Poller retries a prober against a single endpoint until it opens or a
// wall-clock budget runs out. It has no concurrency of its own: Wait blocks
// the calling goroutine for up to the budget.
type Poller struct {
	Prober   probe.Prober
	Interval time.Duration
	Logger   *zap.Logger
}

func New(p probe.Prober, logger *zap.Logger) *Poller {
	return &Poller{Prober: p, Interval: DefaultInterval, Logger: logger}
}

// Wait polls until the endpoint opens or budget elapses. The cadence is not
// compensated for probe duration, so successive probes are at least Interval
// apart. An Invalid probe fails immediately: a malformed address will not
// fix itself, and burning the budget on it only delays the verdict.
//
// Cancelling ctx ends the wait early and counts as a failure; siblings are
// never cancelled by this package.
func (p *Poller) Wait(ctx context.Context, ep endpoint.Endpoint, budget time.Duration) Result {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	deadline := start.Add(budget)

	for {
		out := p.Prober.Probe(ctx, ep)
		switch out.Outcome {
		case probe.Open:
			p.Logger.Info("endpoint_up",
				zap.String("endpoint", ep.Raw),
				zap.Duration("after", time.Since(start)),
				zap.Duration("latency", out.Latency),
			)
			return Result{Endpoint: ep, Up: true, Elapsed: time.Since(start)}
		case probe.Invalid:
			p.Logger.Warn("endpoint_invalid",
				zap.String("endpoint", ep.Raw),
				zap.String("reason", out.Reason),
			)
			return Result{Endpoint: ep, Elapsed: time.Since(start), Reason: out.Reason}
		}

		p.Logger.Debug("endpoint_closed",
			zap.String("endpoint", ep.Raw),
			zap.String("reason", out.Reason),
		)

		if !time.Now().Before(deadline) {
			p.Logger.Error("endpoint_timeout",
				zap.String("endpoint", ep.Raw),
				zap.Duration("budget", budget),
				zap.String("last_error", out.Reason),
			)
			reason := "timed out after " + budget.String()
			if out.Reason != "" {
				reason += ": " + out.Reason
			}
			return Result{Endpoint: ep, Elapsed: time.Since(start), Reason: reason}
		}

		select {
		case <-ctx.Done():
			p.Logger.Warn("wait_cancelled", zap.String("endpoint", ep.Raw))
			return Result{Endpoint: ep, Elapsed: time.Since(start), Reason: ctx.Err().Error()}
		case <-time.After(interval):
		}
	}
}
