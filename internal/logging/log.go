package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andy/fatoura/internal/render"
	"github.com/andy/fatoura/internal/repository"
	"github.com/andy/fatoura/internal/service"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter writes to the log rotator once it has been initialized. Logs are
// not echoed to stdout because the terminal belongs to the CLI and TUI.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	if logRotator == nil {
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem. A single backend logger is created and all
// subsystem loggers created from it write to the backend.
var (
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is closed by Close on shutdown
	logRotator *rotator.Rotator

	// Log is the application logger
	Log = backendLog.Logger("FTRA")

	serviceLog    = backendLog.Logger("SRVC")
	repositoryLog = backendLog.Logger("REPO")
	renderLog     = backendLog.Logger("RNDR")
)

func init() {
	service.UseLogger(serviceLog)
	repository.UseLogger(repositoryLog)
	render.UseLogger(renderLog)
}

// subsystemLoggers maps each subsystem identifier to its logger
var subsystemLoggers = map[string]slog.Logger{
	"FTRA": Log,
	"SRVC": serviceLog,
	"REPO": repositoryLog,
	"RNDR": renderLog,
}

// Init starts writing logs to logFile, rolling it over at 10 MiB and keeping
// three old files, and sets every subsystem to level.
func Init(logFile, level string) error {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	SetLogLevels(level)
	return nil
}

// Close flushes and closes the log file
func Close() error {
	if logRotator == nil {
		return nil
	}
	err := logRotator.Close()
	logRotator = nil
	return err
}

// SetLogLevel sets the level of one subsystem. Unknown subsystems are
// ignored and unknown levels fall back to info.
func SetLogLevel(subsystemID, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := slog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets every subsystem to logLevel
func SetLogLevels(logLevel string) {
	for id := range subsystemLoggers {
		SetLogLevel(id, logLevel)
	}
}

// Subsystems returns the sorted subsystem identifiers
func Subsystems() []string {
	ids := make([]string, 0, len(subsystemLoggers))
	for id := range subsystemLoggers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
