package clusters

import (
	"fmt"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
)

// Output describes one written cluster-order file.
type Output struct {
	Lang  string
	Path  string
	Lines int
}

// Concat writes {base}_clusterorder.{lang} for both languages of the pair:
// every line of cluster 0, then cluster 1, up to cluster n-1.
func Concat(pair Pair, n int, opts Options) ([]Output, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("cluster count must be positive (got %d)", n)
	}
	logger := opts.logger()

	// Both files stay unpublished until their line counts agree.
	writers := make([]*corpus.Writer, 0, 2)
	defer func() {
		for _, w := range writers {
			w.Abort()
		}
	}()
	for _, lang := range pair.Langs() {
		w, err := concatLang(pair, lang, n, opts.Corpus)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	if writers[0].Lines() != writers[1].Lines() {
		return nil, fmt.Errorf("cluster-order corpora are misaligned: %s has %d lines, %s has %d",
			writers[0].Path(), writers[0].Lines(), writers[1].Path(), writers[1].Lines())
	}

	outputs := make([]Output, 0, len(writers))
	for i, w := range writers {
		if err := w.Commit(); err != nil {
			return nil, err
		}
		out := Output{Lang: pair.Langs()[i], Path: w.Path(), Lines: w.Lines()}
		logger.Info("wrote cluster-order corpus",
			logging.File(out.Path),
			logging.Lines(out.Lines),
		)
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// concatLang returns an uncommitted writer holding every cluster of lang.
func concatLang(pair Pair, lang string, n int, opts corpus.Options) (*corpus.Writer, error) {
	w, err := corpus.Create(pair.ClusterOrderPath(lang))
	if err != nil {
		return nil, err
	}
	for i := range n {
		if err := copyLines(w, pair.ClusterPath(i, lang), opts); err != nil {
			w.Abort()
			return nil, err
		}
	}
	return w, nil
}

func copyLines(w *corpus.Writer, path string, opts corpus.Options) error {
	r, err := corpus.Open(path, opts)
	if err != nil {
		return err
	}
	defer r.Close()
	for r.Scan() {
		if err := w.WriteLine(r.Text()); err != nil {
			return err
		}
	}
	return r.Err()
}
