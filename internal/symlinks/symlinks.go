// Package symlinks aliases dataset files under new paths.
package symlinks

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"corpusprep/internal/logging"
)

// ErrLengthMismatch reports unequal numbers of targets and links.
var ErrLengthMismatch = errors.New("number of files does not match number of links")

// Options controls link creation.
type Options struct {
	// Force replaces an existing file or link at the link path.
	Force  bool
	Logger *slog.Logger
}

// Link is one created symlink.
type Link struct {
	Target string
	Path   string
}

// Create makes links[i] a symlink to files[i], creating missing parent
// directories of each link. Targets are stored exactly as given, so relative
// targets resolve against the link's directory.
func Create(files, links []string, opts Options) ([]Link, error) {
	if len(files) != len(links) {
		return nil, fmt.Errorf("%w: %d files, %d links", ErrLengthMismatch, len(files), len(links))
	}
	logger := logging.NewComponentLogger(opts.Logger, "symlinks")

	created := make([]Link, 0, len(files))
	for i, target := range files {
		link := links[i]
		if target == "" || link == "" {
			return created, fmt.Errorf("pair %d: file and link paths must be non-empty", i)
		}
		if dir := filepath.Dir(link); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return created, fmt.Errorf("create link directory %s: %w", dir, err)
			}
		}
		if opts.Force {
			if err := removeExisting(link); err != nil {
				return created, err
			}
		}
		if err := os.Symlink(target, link); err != nil {
			return created, fmt.Errorf("symlink %s -> %s: %w", link, target, err)
		}
		logger.Debug("created symlink", logging.String("link", link), logging.String("target", target))
		created = append(created, Link{Target: target, Path: link})
	}
	logger.Info("created symlinks", logging.Int("count", len(created)))
	return created, nil
}

func removeExisting(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to replace directory %s with a symlink", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove existing %s: %w", path, err)
	}
	return nil
}
