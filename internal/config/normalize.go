package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCorpus()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if c.Clusters.Count <= 0 {
		c.Clusters.Count = defaultClusterCount
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeCorpus() {
	c.Corpus.Encoding = strings.ToLower(strings.TrimSpace(c.Corpus.Encoding))
	switch c.Corpus.Encoding {
	case "", "utf8":
		c.Corpus.Encoding = defaultEncoding
	}
	c.Corpus.Normalization = strings.ToLower(strings.TrimSpace(c.Corpus.Normalization))
	if c.Corpus.Normalization == "" {
		c.Corpus.Normalization = defaultNormalization
	}
	c.Corpus.Trim = strings.ToLower(strings.TrimSpace(c.Corpus.Trim))
	if c.Corpus.Trim == "" {
		c.Corpus.Trim = defaultTrim
	}
}

func (c *Config) normalizeOutput() error {
	if value, ok := os.LookupEnv("CORPUSPREP_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Output.Dir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("CORPUSPREP_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv("CORPUSPREP_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
