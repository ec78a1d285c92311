package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log discards everything until Initialize is called.
var Log *zap.Logger = zap.NewNop()

// Initialize replaces Log with a console logger on stderr at the given level.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl
	return nil
}
