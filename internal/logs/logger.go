package logs

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.SugaredLogger
	base   *zap.Logger
	mu     sync.Mutex
)

// The TUI owns stdout, so logging always goes to a file.
// Creates a logger in the current directory as a fallback.
func init() {
	base = newFileLogger("debug.log")
	Logger = base.Sugar()
}

// Initialize reinitializes the logger to write under a new directory.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	logPath := filepath.Join(logDir, "debug.log")

	old := base
	base = newFileLogger(logPath)
	Logger = base.Sugar()
	Logger.Infow("logger reinitialized", "path", logPath)

	if old != nil {
		_ = old.Sync()
	}
	return nil
}

// Close flushes any buffered log entries.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if base != nil {
		return base.Sync()
	}
	return nil
}

func newFileLogger(path string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// zap could not open the file; keep a no-op logger rather than die
		return zap.NewNop()
	}
	return logger
}
