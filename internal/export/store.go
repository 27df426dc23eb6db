package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store archives a server-side copy of each exported transcript. Optional:
// the download itself never depends on it.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	return NewStoreWithFs(afero.NewOsFs(), dir, logger)
}

func NewStoreWithFs(fs afero.Fs, dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{fs: fs, dir: dir, logger: logger}
}

// Archive writes the transcript under the session id, overwriting any earlier
// copy so the archive always holds the latest export. Returns the path.
func (s *Store) Archive(sessionID string, transcript []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.dir, sessionID+".txt")
	if err := afero.WriteFile(s.fs, path, transcript, os.FileMode(0o644)); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("export archived",
		"session_id", sessionID,
		"path", path,
		"bytes", len(transcript),
	)
	return path, nil
}
