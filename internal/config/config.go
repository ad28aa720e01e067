// Package config holds the explicit, immutable configuration value that every
// other package is handed at construction time. There is no package-level
// singleton here: per spec §9, the source's module-level config-at-import-time
// pattern is replaced by a Config built once in main and passed down.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Thresholds carries every tunable decision boundary named in spec §6.
type Thresholds struct {
	Title             float64 `json:"title"`
	Author            float64 `json:"author"`
	Publisher         float64 `json:"publisher"`
	EarlyExitTitle    float64 `json:"early_exit_title"`
	EarlyExitAuthor   float64 `json:"early_exit_author"`
	EarlyExitPublisher float64 `json:"early_exit_publisher"`
	YearTolerance     int     `json:"year_tolerance"`
	MinimumCombined   float64 `json:"minimum_combined_score"`
	LCCNFloor         float64 `json:"lccn_floor"`
}

// YearFilters carries the min/max year window and the brute-force-missing-year
// behavior named in spec §6.
type YearFilters struct {
	MinYear               int  `json:"min_year"`
	MaxYear               int  `json:"max_year"`
	BruteForceMissingYear bool `json:"brute_force_missing_year"`
}

// ScoringWeights is one of the four scenario weight sets from spec §4.8.
type ScoringWeights struct {
	Title     float64 `json:"title"`
	Author    float64 `json:"author"`
	Publisher float64 `json:"publisher"`
}

// Processing carries the batch-driver tunables from spec §6.
type Processing struct {
	BatchSize     int    `json:"batch_size"`
	MaxWorkers    int    `json:"max_workers"` // 0 means "compute from CPU count"
	StreamingMode bool   `json:"streaming_mode"`
	TempDir       string `json:"temp_dir"`
}

// CacheConfig carries the cache tunables from spec §6.
type CacheConfig struct {
	CacheDir     string `json:"cache_dir"`
	ForceRefresh bool   `json:"force_refresh"`
	DisableCache bool   `json:"disable_cache"`
}

// OutputConfig carries the export-layer tunables from spec §6. The core does
// not implement exporters; this only threads the operator's choice through.
type OutputConfig struct {
	Formats    []string `json:"formats"`
	SingleFile bool     `json:"single_file"`
	Path       string   `json:"output_path"`
}

// AnalysisModes carries the three named analysis-mode flags from spec §6.
type AnalysisModes struct {
	USOnly                           bool `json:"us_only"`
	ScoreEverything                  bool `json:"score_everything"`
	GroundTruthMode                  bool `json:"ground_truth_mode"`
	DisableYearFilterInScoreEverything bool `json:"disable_year_filter_in_score_everything"`
}

// Wordlists carries every resource loaded from wordlists.json: stopwords per
// language, author/publisher qualifier words, the abbreviation dictionary,
// generic-title patterns, and the Unicode mojibake mapping. Per spec §9, the
// mojibake table ships as data, not code.
type Wordlists struct {
	Stopwords             map[string][]string `json:"stopwords"`
	AuthorStopwords       []string            `json:"author_stopwords"`
	AuthorTitles          []string            `json:"author_titles"`
	PublisherStopwords    []string            `json:"publisher_stopwords"`
	PublisherSuffixRegex  string              `json:"publisher_suffix_regex"`
	Abbreviations         map[string]string   `json:"abbreviations"`
	GenericTitlePatterns  []string            `json:"generic_title_patterns"`
	UnicodeCorrections    map[string]string   `json:"unicode_corrections"`
}

// Config is the single immutable value threaded through the whole system
// after startup. Workers receive a pointer to the same Config (read-only,
// never mutated after construction) rather than each re-parsing flags.
type Config struct {
	Thresholds    Thresholds                `json:"thresholds"`
	YearFilters   YearFilters                `json:"year_filters"`
	Weights       map[string]ScoringWeights  `json:"scoring_weights"`
	Processing    Processing                 `json:"processing"`
	Cache         CacheConfig                `json:"cache"`
	Output        OutputConfig               `json:"output"`
	Analysis      AnalysisModes              `json:"analysis"`
	Wordlists     Wordlists                  `json:"wordlists"`

	GenericFrequencyThreshold int `json:"generic_frequency_threshold"`
	GenericCacheSize          int `json:"generic_cache_size"`
	GenericMaxTitleCounts     int `json:"generic_max_title_counts"`

	// PDCutoffYear is the year strictly before which a record of any country
	// is public domain regardless of match outcome (spec §4.11, PD_pre_threshold).
	PDCutoffYear int `json:"pd_cutoff_year"`
	// RenewalRequiredWindowStart/End bound the years for which a missing
	// renewal match implies public domain for US records (spec §4.11).
	RenewalRequiredWindowStart int `json:"renewal_required_window_start"`
	RenewalRequiredWindowEnd   int `json:"renewal_required_window_end"`
}

// Default returns the built-in configuration used when no override file is
// supplied. Numeric defaults mirror the worked examples in spec §8.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			Title:              40,
			Author:             50,
			Publisher:          50,
			EarlyExitTitle:     95,
			EarlyExitAuthor:    90,
			EarlyExitPublisher: 90,
			YearTolerance:      1,
			MinimumCombined:    40,
			LCCNFloor:          95,
		},
		YearFilters: YearFilters{
			MinYear:               1500,
			MaxYear:               2100,
			BruteForceMissingYear: false,
		},
		Weights: map[string]ScoringWeights{
			"normal_with_publisher":  {Title: 0.5, Author: 0.3, Publisher: 0.2},
			"generic_with_publisher": {Title: 0.2, Author: 0.5, Publisher: 0.3},
			"normal_no_publisher":    {Title: 0.6, Author: 0.4, Publisher: 0},
			"generic_no_publisher":   {Title: 0.3, Author: 0.7, Publisher: 0},
		},
		Processing: Processing{
			BatchSize:     200,
			MaxWorkers:    0,
			StreamingMode: false,
			TempDir:       os.TempDir(),
		},
		Cache: CacheConfig{
			CacheDir: ".marcpd-cache",
		},
		Output: OutputConfig{
			Formats:    []string{"csv"},
			SingleFile: true,
		},
		Analysis: AnalysisModes{},
		Wordlists: Wordlists{
			Stopwords: map[string][]string{
				"eng": {"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has",
					"he", "in", "is", "it", "its", "of", "on", "or", "that", "the", "to", "was",
					"were", "will", "with"},
				"fre": {"le", "la", "les", "de", "des", "du", "un", "une", "et", "en", "a", "au",
					"aux", "dans", "pour", "par", "sur", "avec"},
				"ger": {"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "und",
					"in", "von", "zu", "mit", "auf", "fur"},
				"spa": {"el", "la", "los", "las", "de", "del", "un", "una", "y", "en", "por",
					"para", "con", "a"},
				"ita": {"il", "lo", "la", "i", "gli", "le", "di", "un", "uno", "una", "e", "in",
					"per", "con", "su", "a"},
			},
			AuthorStopwords: []string{"dr", "prof", "sir", "lord", "lady", "mrs", "ms", "mr"},
			AuthorTitles:    []string{"dr", "prof", "sir", "lord", "lady", "mrs", "ms"},
			PublisherStopwords: []string{"the", "a", "an", "and", "of", "for", "company", "co",
				"inc", "ltd", "llc", "publishers", "publishing", "press", "books"},
			PublisherSuffixRegex: `\b(inc|ltd|llc|co)\.?\s*$`,
			Abbreviations: map[string]string{
				"co":    "company",
				"corp":  "corporation",
				"inc":   "incorporated",
				"ltd":   "limited",
				"dept":  "department",
				"univ":  "university",
				"govt":  "government",
				"assn":  "association",
				"natl":  "national",
				"intl":  "international",
				"ed":    "edition",
				"rev":   "revised",
				"trans": "translated",
				"vol":   "volume",
				"no":    "number",
				"pp":    "pages",
				"st":    "saint",
				"mt":    "mount",
			},
			GenericTitlePatterns: []string{
				"poems", "collected works", "annual report", "selected works",
				"complete works", "collected poems", "works", "letters",
				"correspondence", "diary", "journal", "memoirs", "autobiography",
				"report", "proceedings", "bulletin", "yearbook", "handbook",
				"catalogue", "catalog", "directory", "transactions",
			},
			UnicodeCorrections: map[string]string{
				"Ã©": "é",
				"Ã¨": "è",
				"Ã¼": "ü",
				"Ã¶": "ö",
				"Ã¤": "ä",
				"Ã±": "ñ",
				"Ã§": "ç",
			},
		},
		GenericFrequencyThreshold: 10,
		GenericCacheSize:          1000,
		GenericMaxTitleCounts:     50000,

		PDCutoffYear:               1929,
		RenewalRequiredWindowStart: 1929,
		RenewalRequiredWindowEnd:   1963,
	}
}

// Load reads a JSON configuration file and overlays it onto Default(). A
// missing optional field keeps its default value because Default() is
// decoded into first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the one fatal configuration invariant named in spec §6:
// max_year < min_year is a fatal configuration error.
func (c *Config) Validate() error {
	if c.YearFilters.MaxYear < c.YearFilters.MinYear {
		return fmt.Errorf("configuration error: max_year (%d) < min_year (%d)",
			c.YearFilters.MaxYear, c.YearFilters.MinYear)
	}
	return nil
}

// StopwordsFor returns the stopword set for a processing language, falling
// back to English when the language is unrecognized.
func (c *Config) StopwordsFor(lang string) map[string]struct{} {
	words, ok := c.Wordlists.Stopwords[lang]
	if !ok {
		words = c.Wordlists.Stopwords["eng"]
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ScoringWeightsFor returns the weight scenario by key, or a zero-value
// ScoringWeights if the scenario is unknown (callers treat that as "no
// evidence of any field" rather than panicking).
func (c *Config) ScoringWeightsFor(scenario string) ScoringWeights {
	return c.Weights[scenario]
}

// AuthorStopwordSet returns the author-qualifier stopword list as a set.
func (c *Config) AuthorStopwordSet() map[string]struct{} {
	return toSet(c.Wordlists.AuthorStopwords)
}

// PublisherStopwordSet returns the publisher stopword list as a set.
func (c *Config) PublisherStopwordSet() map[string]struct{} {
	return toSet(c.Wordlists.PublisherStopwords)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
