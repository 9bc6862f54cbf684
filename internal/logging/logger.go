package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options control verbosity and the optional file sink.
type Options struct {
	Quiet  bool   // only errors on the console
	Debug  bool   // per-probe detail
	LogDir string // when set, also write a rotating JSON log here
}

// New builds the process logger. Console output goes to stderr so that a
// caller capturing stdout never sees diagnostics mixed into it. Quiet raises
// the console level to Error; errors are never suppressed. The file sink,
// when enabled, always records at Debug.
func New(opts Options) (*zap.Logger, error) {
	level := zap.InfoLevel
	switch {
	case opts.Quiet:
		level = zap.ErrorLevel
	case opts.Debug:
		level = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	console := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)

	if opts.LogDir == "" {
		return zap.New(console), nil
	}

	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.LogDir, "waitgate.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})
	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.TimeKey = "ts"
	file := zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), w, zap.DebugLevel)

	return zap.New(zapcore.NewTee(console, file)), nil
}
