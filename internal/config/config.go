package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the knobs for one invocation.
type Config struct {
	Timeout  time.Duration // per-endpoint polling budget
	Interval time.Duration // pause between probes of one endpoint
	Quiet    bool          // only errors on the console
	Debug    bool          // log every probe attempt
	LogDir   string        // when set, also write a rotating JSON log here
}

// FromEnv reads configuration from the environment, falling back to
// defaults. Flags are applied on top of this by the CLI.
func FromEnv() Config {
	cfg := Config{
		Timeout:  30 * time.Second,
		Interval: time.Second,
	}

	if v := os.Getenv("WAIT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("WAIT_POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Interval = time.Duration(ms) * time.Millisecond
		}
	}
	cfg.Quiet = boolEnv("WAIT_QUIET")
	cfg.Debug = boolEnv("WAIT_DEBUG")
	cfg.LogDir = os.Getenv("LOG_DIR")

	return cfg
}

func boolEnv(key string) bool {
	v := os.Getenv(key)
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
}
