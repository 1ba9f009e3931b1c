package clusters

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
)

// ErrClusterID reports an unparsable or out-of-range cluster index.
var ErrClusterID = errors.New("invalid cluster id")

// Pair names an aligned source/target corpus by its basename and languages.
type Pair struct {
	Base    string
	SrcLang string
	TrgLang string
}

// Validate checks that every part of the pair is set.
func (p Pair) Validate() error {
	switch {
	case strings.TrimSpace(p.Base) == "":
		return errors.New("input file basename is required")
	case strings.TrimSpace(p.SrcLang) == "":
		return errors.New("source language is required")
	case strings.TrimSpace(p.TrgLang) == "":
		return errors.New("target language is required")
	case p.SrcLang == p.TrgLang:
		return fmt.Errorf("source and target language are both %q", p.SrcLang)
	}
	return nil
}

// Langs returns the source and target language in that order.
func (p Pair) Langs() []string { return []string{p.SrcLang, p.TrgLang} }

// Path returns {base}.{lang}.
func (p Pair) Path(lang string) string {
	return p.Base + "." + lang
}

// ClusterPath returns {base}_cluster{cluster}.{lang}.
func (p Pair) ClusterPath(cluster int, lang string) string {
	return fmt.Sprintf("%s_cluster%d.%s", p.Base, cluster, lang)
}

// ClusterOrderPath returns {base}_clusterorder.{lang}.
func (p Pair) ClusterOrderPath(lang string) string {
	return fmt.Sprintf("%s_clusterorder.%s", p.Base, lang)
}

// Options controls corpus decoding and logging.
type Options struct {
	Corpus corpus.Options
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	return logging.NewComponentLogger(o.Logger, "clusters")
}
