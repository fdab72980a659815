// Package credential persists the photographer's API token between sessions.
// The file holds a single line; it is read once at startup and rewritten only
// after a batch where every file uploaded.
package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the token file used when none is configured. It is relative
// to the working directory.
const DefaultPath = ".raceshot_token"

// Store reads and writes the token file. The zero value uses DefaultPath and
// discards log output.
type Store struct {
	Path   string
	Logger *slog.Logger
}

// Load returns the trimmed token, or "" when the file is missing or unreadable.
func (s Store) Load() string {
	path, err := s.resolve()
	if err != nil {
		s.logger().Warn("resolve credential path", "error", err)
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger().Warn("read credential", "path", path, "error", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save overwrites the file with the trimmed token. Failures are logged.
func (s Store) Save(token string) {
	if err := s.write(token); err != nil {
		s.logger().Warn("save credential", "error", err)
		return
	}
	s.logger().Debug("credential saved")
}

func (s Store) write(token string) error {
	path, err := s.resolve()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credential dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(token)), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod credential: %w", err)
	}
	return nil
}

func (s Store) resolve() (string, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return DefaultPath, nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

func (s Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
