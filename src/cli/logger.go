package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logger writing JSON lines to path. The terminal belongs to
// the editor, so without a log file nothing is logged at all.
func NewLogger(path string, verbose bool) (*zap.Logger, error) {
	if len(path) == 0 {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
