package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/waitgate/internal/config"
	"github.com/hamed0406/waitgate/internal/gate"
	"github.com/hamed0406/waitgate/internal/logging"
	"github.com/hamed0406/waitgate/internal/poller"
	"github.com/hamed0406/waitgate/internal/probe"
	"github.com/hamed0406/waitgate/internal/source"
)

func runWait(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()

	// Config file fills in what neither flags nor environment set.
	var fileTargets []gate.Target
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if f.Timeout > 0 && os.Getenv("WAIT_TIMEOUT") == "" && !cmd.Flags().Changed("timeout") {
			cfg.Timeout = time.Duration(f.Timeout) * time.Second
		}
		if f.Quiet {
			cfg.Quiet = true
		}
		for _, ep := range f.Endpoints {
			fileTargets = append(fileTargets, gate.Target{
				Raw:     ep.Address,
				Timeout: time.Duration(ep.Timeout) * time.Second,
			})
		}
	}

	// Flags win over everything.
	if cmd.Flags().Changed("timeout") {
		n, _ := cmd.Flags().GetInt("timeout")
		cfg.Timeout = time.Duration(n) * time.Second
	}
	if q, _ := cmd.Flags().GetBool("quiet"); q {
		cfg.Quiet = true
	}
	if d, _ := cmd.Flags().GetBool("debug"); d {
		cfg.Debug = true
	}

	logger, err := logging.New(logging.Options{Quiet: cfg.Quiet, Debug: cfg.Debug, LogDir: cfg.LogDir})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Tag every line of this invocation so interleaved runs in a shared
	// log file stay separable.
	logger = logger.With(zap.String("run", uuid.NewString()[:8]))

	targets := fileTargets
	for _, a := range args {
		targets = append(targets, gate.Target{Raw: a})
	}
	if len(targets) == 0 {
		discovered := source.Environ(os.Environ()).Endpoints()
		for _, raw := range discovered {
			targets = append(targets, gate.Target{Raw: raw})
		}
		if len(discovered) > 0 {
			logger.Info("endpoints_discovered", zap.Int("count", len(discovered)))
		}
	}

	logger.Info("waiting",
		zap.Int("endpoints", len(targets)),
		zap.Duration("timeout", cfg.Timeout),
	)

	p := poller.New(probe.NewNetProber(), logger)
	p.Interval = cfg.Interval
	g := gate.New(p, cfg.Timeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := g.WaitForAll(ctx, targets)
	if !summary.AllUp {
		return summary.Err
	}
	return nil
}
