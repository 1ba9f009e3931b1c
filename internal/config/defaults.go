package config

const (
	defaultEncoding      = "utf-8"
	defaultNormalization = NormalizationNone
	defaultTrim          = TrimTrailing
	defaultOutputDir     = "."
	defaultClusterCount  = 4
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Normalization forms accepted by corpus.normalization.
const (
	NormalizationNone = "none"
	NormalizationNFC  = "nfc"
	NormalizationNFKC = "nfkc"
)

// Trim modes accepted by corpus.trim.
const (
	TrimTrailing = "trailing"
	TrimBoth     = "both"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Corpus: Corpus{
			Encoding:      defaultEncoding,
			Normalization: defaultNormalization,
			Trim:          defaultTrim,
		},
		Output: Output{
			Dir:  defaultOutputDir,
			Lock: true,
		},
		Clusters: Clusters{
			Count: defaultClusterCount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
