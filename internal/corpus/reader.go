package corpus

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"corpusprep/internal/config"
)

const maxLineBytes = 64 * 1024 * 1024

// Options describes how lines are decoded.
type Options struct {
	Encoding      string
	Normalization string
	Trim          string
}

// DefaultOptions reads UTF-8 and strips trailing whitespace only.
func DefaultOptions() Options {
	return Options{
		Encoding:      "utf-8",
		Normalization: config.NormalizationNone,
		Trim:          config.TrimTrailing,
	}
}

// OptionsFromConfig derives reader options from the corpus section.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Encoding:      cfg.Corpus.Encoding,
		Normalization: cfg.Corpus.Normalization,
		Trim:          cfg.Corpus.Trim,
	}
}

// Reader yields cleaned lines from a corpus file.
type Reader struct {
	path    string
	closers []io.Closer
	scanner *bufio.Scanner
	clean   func(string) string
	line    int
	text    string
}

// Open prepares path for line-by-line reading.
func Open(path string, opts Options) (*Reader, error) {
	clean, err := lineCleaner(opts)
	if err != nil {
		return nil, err
	}
	decoder, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	r := &Reader{path: path, closers: []io.Closer{file}, clean: clean}

	var src io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("open gzip corpus %s: %w", path, err)
		}
		r.closers = append(r.closers, gz)
		src = gz
	}

	scanner := bufio.NewScanner(transform.NewReader(src, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	r.scanner = scanner
	return r, nil
}

// Scan advances to the next line. It returns false at EOF or on error.
func (r *Reader) Scan() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	r.text = r.clean(r.scanner.Text())
	return true
}

// Text returns the current cleaned line.
func (r *Reader) Text() string { return r.text }

// Line returns the 1-based number of the current line.
func (r *Reader) Line() int { return r.line }

// Path returns the file being read.
func (r *Reader) Path() string { return r.path }

// Err reports the first non-EOF error encountered by Scan.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("read corpus %s line %d: %w", r.path, r.line+1, err)
	}
	return nil
}

// Close releases the underlying file handles.
func (r *Reader) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// ReadLines loads every cleaned line of path into memory.
func ReadLines(path string, opts Options) ([]string, error) {
	r, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var lines []string
	for r.Scan() {
		lines = append(lines, r.Text())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func decoderFor(name string) (transform.Transformer, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		label = "utf-8"
	}
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("corpus encoding: unsupported value %q", name)
	}
	// A BOM, when present, wins over the configured encoding.
	return xunicode.BOMOverride(enc.NewDecoder()), nil
}

func lineCleaner(opts Options) (func(string) string, error) {
	var trim func(string) string
	switch strings.ToLower(strings.TrimSpace(opts.Trim)) {
	case "", config.TrimTrailing:
		trim = func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
	case config.TrimBoth:
		trim = func(s string) string { return strings.TrimFunc(s, unicode.IsSpace) }
	default:
		return nil, fmt.Errorf("corpus trim: unsupported value %q", opts.Trim)
	}

	var form *norm.Form
	switch strings.ToLower(strings.TrimSpace(opts.Normalization)) {
	case "", config.NormalizationNone:
	case config.NormalizationNFC:
		f := norm.NFC
		form = &f
	case config.NormalizationNFKC:
		f := norm.NFKC
		form = &f
	default:
		return nil, fmt.Errorf("corpus normalization: unsupported value %q", opts.Normalization)
	}

	if form == nil {
		return trim, nil
	}
	return func(s string) string { return trim(form.String(s)) }, nil
}
