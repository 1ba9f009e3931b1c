package config

import (
	"fmt"

	"golang.org/x/net/html/charset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if enc, _ := charset.Lookup(c.Corpus.Encoding); enc == nil {
		return fmt.Errorf("corpus.encoding: unsupported value %q", c.Corpus.Encoding)
	}
	switch c.Corpus.Normalization {
	case NormalizationNone, NormalizationNFC, NormalizationNFKC:
	default:
		return fmt.Errorf("corpus.normalization must be one of none, nfc, nfkc (got %q)", c.Corpus.Normalization)
	}
	switch c.Corpus.Trim {
	case TrimTrailing, TrimBoth:
	default:
		return fmt.Errorf("corpus.trim must be trailing or both (got %q)", c.Corpus.Trim)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
