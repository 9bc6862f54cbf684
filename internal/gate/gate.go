package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/waitgate/internal/endpoint"
	"github.com/hamed0406/waitgate/internal/poller"
)

// DefaultTimeout is the per-endpoint polling budget when none is given.
const DefaultTimeout = 30 * time.Second

// Target pairs a raw endpoint string with an optional budget override.
type Target struct {
	Raw     string
	Timeout time.Duration // 0 means the gate's default
}

// Summary aggregates the poll results of one invocation. AllUp is true only
// if every endpoint came up; Err combines the per-endpoint failures and is
// nil iff AllUp.
type Summary struct {
	AllUp    bool
	Results  []poller.Result
	TimedOut []string // raw endpoint strings that never came up
	Err      error
}

// Gate waits for a whole set of endpoints to accept connections.
//
// Every endpoint always gets its full budget: siblings are never cancelled
// when one times out, because knowing everything that is down is worth the
// wait to the caller.
type Gate struct {
	Poller  *poller.Poller
	Timeout time.Duration
	Logger  *zap.Logger
}

func New(p *poller.Poller, timeout time.Duration, logger *zap.Logger) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gate{Poller: p, Timeout: timeout, Logger: logger}
}

// WaitForAll polls every target to completion and reports the aggregate.
//
// An empty target list succeeds: having no dependencies is not an error.
// A single target is polled inline on the calling goroutine; with more than
// one, each target gets its own goroutine and WaitForAll blocks on the
// barrier until the slowest one finishes. Each goroutine writes only its own
// result slot, so no locking is needed.
func (g *Gate) WaitForAll(ctx context.Context, targets []Target) Summary {
	results := make([]poller.Result, len(targets))

	switch len(targets) {
	case 0:
	case 1:
		results[0] = g.wait(ctx, targets[0])
	default:
		var wg sync.WaitGroup
		for i, t := range targets {
			wg.Add(1)
			go func(i int, t Target) {
				defer wg.Done()
				results[i] = g.wait(ctx, t)
			}(i, t)
		}
		wg.Wait()
	}

	return g.summarize(results)
}

func (g *Gate) wait(ctx context.Context, t Target) poller.Result {
	budget := t.Timeout
	if budget <= 0 {
		budget = g.Timeout
	}
	return g.Poller.Wait(ctx, endpoint.Parse(t.Raw), budget)
}

func (g *Gate) summarize(results []poller.Result) Summary {
	s := Summary{AllUp: true, Results: results}
	for _, r := range results {
		if r.Up {
			continue
		}
		s.AllUp = false
		s.TimedOut = append(s.TimedOut, r.Endpoint.Raw)
		s.Err = multierr.Append(s.Err, fmt.Errorf("%s: %s", r.Endpoint.Raw, r.Reason))
	}

	if s.AllUp {
		g.Logger.Info("all_endpoints_up", zap.Int("count", len(results)))
	} else {
		g.Logger.Error("endpoints_down",
			zap.Strings("endpoints", s.TimedOut),
			zap.Int("total", len(results)),
		)
	}
	return s
}
