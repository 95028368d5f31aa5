package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Emit writes rendered output. With an empty outputPath it is printed to
// Stdout followed by a newline; otherwise the file is replaced atomically.
func (m *Manager) Emit(rendered, outputPath string) error {
	if outputPath == "" {
		if _, err := fmt.Fprintln(m.Stdout, rendered); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), DirPerms); err != nil {
		return NewPathError("emit", outputPath, fmt.Errorf("creating output directory: %w", err))
	}

	_, statErr := os.Stat(outputPath)
	created := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(outputPath, strings.NewReader(rendered)); err != nil {
		return NewPathError("emit", outputPath, err)
	}

	// atomic keeps the mode of a replaced file; new files start as 0600
	if created {
		if err := os.Chmod(outputPath, FilePerms); err != nil {
			return NewPathError("emit", outputPath, err)
		}
	}

	m.logger.Info("wrote output",
		slog.String("path", outputPath),
		slog.Int("bytes", len(rendered)))

	return nil
}

// Check compares rendered output with the file at outputPath without writing
// anything. When they differ it returns a line diff and ErrOutputDrift.
func (m *Manager) Check(rendered, outputPath string) (string, error) {
	if outputPath == "" {
		return "", ErrNoOutputPath
	}

	current, err := os.ReadFile(outputPath) //nolint:gosec // output path is supplied by the user
	missing := errors.Is(err, os.ErrNotExist)
	if err != nil && !missing {
		return "", NewPathError("check", outputPath, err)
	}

	if !missing && string(current) == rendered {
		m.logger.Debug("output up to date", slog.String("path", outputPath))
		return "", nil
	}

	return generateLineDiff(string(current), rendered, outputPath), NewPathError("check", outputPath, ErrOutputDrift)
}
