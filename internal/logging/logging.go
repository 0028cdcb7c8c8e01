package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// New builds a file-backed logger under dir. The TUI owns the
// terminal, so nothing may ever be written to stdout or stderr.
func New(dir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "sqlab.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	return cfg.Build()
}
