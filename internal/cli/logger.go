package cli

import "go.uber.org/zap"

// debugLogger wraps zap for verbose debug with store context.
type debugLogger struct {
	sugared *zap.SugaredLogger
	globals *Globals
}

func newDebugLogger(globals *Globals) *debugLogger {
	if globals == nil || !globals.Verbose {
		return &debugLogger{}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	logger, _ := cfg.Build()
	return &debugLogger{
		sugared: logger.Sugar(),
		globals: globals,
	}
}

func (l *debugLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	l.sugared.With(
		"store_driver", l.globals.Store.Driver,
		"store_path", l.globals.Store.Path,
	).Debugf(format, args...)
}

// zapLogger builds the structured logger handed to feeds and watchers.
// Quiet by default so text output stays clean; verbose turns on debug JSON.
func zapLogger(globals *Globals) *zap.Logger {
	if globals == nil || !globals.Verbose {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
