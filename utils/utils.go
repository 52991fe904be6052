// Package utils holds small cross-cutting helpers shared by every pipeline
// stage: environment lookups, the process-wide structured logger, and
// atomic-file-write plumbing for the Index Store.
package utils

import (
	"log/slog"
	"os"
	"sync"

	"github.com/mdobak/go-xerrors"
)

var (
	loggerOnce sync.Once
	logger     *slog.Logger
)

// GetLogger returns the process-wide structured logger. Level is read from
// LOG_LEVEL (debug|info|warn|error), defaulting to info.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		var level slog.Level
		switch os.Getenv("LOG_LEVEL") {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		logger = slog.New(handler)
	})
	return logger
}

// Wrap captures err with go-xerrors (xerrors.New(err), preserving it as the
// Unwrap cause) so a log/slog field still carries the original cause.
// message is attached as structured context via xerrors' own Fields rather
// than folded into the error string, so errors.Is/errors.As on the result
// still reach the wrapped cause (e.g. to recover a *fileformat.DecodeError's
// Kind).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return xerrors.New(err, xerrors.Fields{"context": message})
}

// AtomicWriteFile writes data to a temporary sibling of path and renames it
// into place, so readers never observe a partial write.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
