package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const writeBufferSize = 64 * 1024

// Writer emits newline-terminated lines into a temporary file that replaces
// the destination only on Commit.
type Writer struct {
	dest     string
	tmp      *os.File
	buf      *bufio.Writer
	lines    int
	finished bool
}

// Create opens a writer for dest, creating parent directories as needed.
func Create(dest string) (*Writer, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %s: %w", dest, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("chmod temp file for %s: %w", dest, err)
	}
	return &Writer{dest: dest, tmp: tmp, buf: bufio.NewWriterSize(tmp, writeBufferSize)}, nil
}

// WriteLine appends line followed by a single newline.
func (w *Writer) WriteLine(line string) error {
	if w.finished {
		return errors.New("write to finished corpus writer")
	}
	if _, err := w.buf.WriteString(line); err != nil {
		return fmt.Errorf("write %s: %w", w.dest, err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("write %s: %w", w.dest, err)
	}
	w.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int { return w.lines }

// Path returns the final destination.
func (w *Writer) Path() string { return w.dest }

// Commit flushes the data and atomically moves it to the destination.
func (w *Writer) Commit() error {
	if w.finished {
		return errors.New("commit of finished corpus writer")
	}
	w.finished = true
	tmpPath := w.tmp.Name()
	if err := w.buf.Flush(); err != nil {
		_ = w.tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("flush %s: %w", w.dest, err)
	}
	if err := w.tmp.Sync(); err != nil {
		_ = w.tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync %s: %w", w.dest, err)
	}
	if err := w.tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", w.dest, err)
	}
	if err := os.Rename(tmpPath, w.dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("publish %s: %w", w.dest, err)
	}
	return nil
}

// Abort discards everything written. It is a no-op after Commit, so it is
// safe to defer.
func (w *Writer) Abort() {
	if w.finished {
		return
	}
	w.finished = true
	_ = w.tmp.Close()
	_ = os.Remove(w.tmp.Name())
}
