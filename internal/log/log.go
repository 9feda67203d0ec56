// Package log holds the process logger.
package log

import (
	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is shared by every package. It discards everything until Setup is
// called.
var Logger = zap.NewNop()

// Setup replaces Logger with a console logger at the given level.
func Setup(name, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "parse log level `%s`", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}

	Logger = logger.Named(name)
	return nil
}
