package clusters

import (
	"fmt"
	"strconv"
	"strings"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
)

// Separate splits the pair into n cluster subcorpora using the cluster ID on
// the matching line of indicesPath. It returns the number of lines written
// to each cluster. Every cluster gets a file, even when empty.
func Separate(pair Pair, indicesPath string, n int, opts Options) ([]int, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("cluster count must be positive (got %d)", n)
	}
	logger := opts.logger()

	src, err := corpus.Open(pair.Path(pair.SrcLang), opts.Corpus)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	trg, err := corpus.Open(pair.Path(pair.TrgLang), opts.Corpus)
	if err != nil {
		return nil, err
	}
	defer trg.Close()
	indices, err := corpus.Open(indicesPath, corpus.DefaultOptions())
	if err != nil {
		return nil, err
	}
	defer indices.Close()

	srcOut := make([]*corpus.Writer, n)
	trgOut := make([]*corpus.Writer, n)
	for i := range n {
		if srcOut[i], err = corpus.Create(pair.ClusterPath(i, pair.SrcLang)); err != nil {
			return nil, err
		}
		defer srcOut[i].Abort()
		if trgOut[i], err = corpus.Create(pair.ClusterPath(i, pair.TrgLang)); err != nil {
			return nil, err
		}
		defer trgOut[i].Abort()
	}

	for src.Scan() {
		if !trg.Scan() {
			if err := trg.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%s ends at line %d but %s continues", trg.Path(), trg.Line(), src.Path())
		}
		if !indices.Scan() {
			if err := indices.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%s ends at line %d but %s continues", indices.Path(), indices.Line(), src.Path())
		}
		id, err := parseClusterID(indices.Text(), n)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", indices.Path(), indices.Line(), err)
		}
		if err := srcOut[id].WriteLine(src.Text()); err != nil {
			return nil, err
		}
		if err := trgOut[id].WriteLine(trg.Text()); err != nil {
			return nil, err
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	if trg.Scan() {
		logging.WarnWithContext(logger, "target corpus is longer than source", "target_longer_than_source",
			logging.File(trg.Path()),
			logging.Int("source_lines", src.Line()),
			logging.String(logging.FieldImpact, "trailing target lines were not assigned to any cluster"),
		)
	}

	counts := make([]int, n)
	for i := range n {
		if err := srcOut[i].Commit(); err != nil {
			return nil, err
		}
		if err := trgOut[i].Commit(); err != nil {
			return nil, err
		}
		counts[i] = srcOut[i].Lines()
		logger.Debug("wrote cluster",
			logging.Cluster(i),
			logging.Lines(counts[i]),
		)
	}
	logger.Info("separated corpus by cluster indices",
		logging.File(pair.Base),
		logging.Lines(src.Line()),
		logging.Int("clusters", n),
	)
	return counts, nil
}

func parseClusterID(text string, n int) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrClusterID, text)
	}
	if id < 0 || id >= n {
		return 0, fmt.Errorf("%w: %d outside [0,%d)", ErrClusterID, id, n)
	}
	return id, nil
}
