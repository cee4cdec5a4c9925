package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

/*
Config is the configuration for the corpus tools.

Contains the log level plus one section per tool: corpus statistics,
similarity prediction and the random-walk generator.
*/
type Config struct {
	LogLevel   string           `json:"log_level"`
	Stats      StatsConfig      `json:"stats"`
	Similarity SimilarityConfig `json:"similarity"`
	Walk       WalkConfig       `json:"walk"`
}

/*
StatsConfig is the configuration for the corpus statistics tool.
*/
type StatsConfig struct {
	// path to the sentence-per-line corpus
	Corpus string `json:"corpus"`
	// print only the rare word list
	Rare bool `json:"rare"`
	// compute duplicate sentences and the length histogram
	UniqueSentences bool `json:"unique_sentences"`
}

/*
SimilarityConfig is the configuration for the similarity predictor.
*/
type SimilarityConfig struct {
	// vocabulary mapping of the first table; empty means Vecs1 is a retrofit text file
	Word2Idx1 string `json:"word2idx1"`
	// vocabulary mapping of the second table
	Word2Idx2 string `json:"word2idx2"`
	// vectors of the first table
	Vecs1 string `json:"vecs1"`
	// vectors of the second table (optional)
	Vecs2 string `json:"vecs2"`
	// sum the vectors of the words of a multi-word expression
	SumMWE bool `json:"smwe"`
	// use the mean vector of a table for unknown words
	Default bool `json:"default"`
	// tab separated word pairs
	Test string `json:"test"`
	// one score per line
	Out string `json:"out"`
}

/*
WalkConfig is the configuration for the random-walk corpus generator.
*/
type WalkConfig struct {
	// probability to continue a sentence after each step
	Alpha float64 `json:"alpha"`
	// corpus size in Unit
	Size int `json:"size"`
	// unit of Size
	Unit Unit `json:"unit"`
	// output corpus path
	Output string `json:"output"`
	// minimum sentence length in lemmas
	Min int `json:"min"`
	// hierarchy direction constraint
	Direction Direction `json:"direction"`
	// split multi-word expressions into space separated words
	SplitMWE bool `json:"mwe"`
	// random seed, 0 picks one from the clock
	Seed uint64 `json:"seed"`
	// WordNet dict directory
	WordNetDir string `json:"wordnet_dir"`
	// JSON hierarchy file, alternative to WordNetDir
	HierarchyPath string `json:"hierarchy"`
}

/*
Default config
*/
func DefaultConfig() *Config {
	return &Config{
		Stats: StatsConfig{
			Rare:            false,
			UniqueSentences: true,
		},
		Walk: WalkConfig{
			Alpha:     0.85,
			Size:      1000,
			Unit:      UnitLine,
			Min:       1,
			Direction: DirectionBoth,
			SplitMWE:  false,
		},
		// logging configuration
		LogLevel: "warn",
	}
}

/*
LoadFromFile loads the configuration from a JSON file.
*/
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return config, nil
}

// DefaultPath is the optional config file read by the command line tools.
const DefaultPath = "wnwalk.json"

/*
Load reads the config file at path, falling back to the defaults when it
does not exist, and applies the environment on top.
*/
func Load(path string) (*Config, error) {
	config, err := LoadFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		config = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := LoadFromEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

/*
LoadFromEnv applies WNW_* environment variables on top of config.

Malformed values are reported instead of being ignored.
*/
func LoadFromEnv(config *Config) error {
	if level := os.Getenv("WNW_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	// Walk config
	if alphaStr := os.Getenv("WNW_ALPHA"); alphaStr != "" {
		alpha, err := strconv.ParseFloat(alphaStr, 64)
		if err != nil {
			return fmt.Errorf("WNW_ALPHA: %w", err)
		}
		config.Walk.Alpha = alpha
	}

	if sizeStr := os.Getenv("WNW_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return fmt.Errorf("WNW_SIZE: %w", err)
		}
		config.Walk.Size = size
	}

	if unitStr := os.Getenv("WNW_UNIT"); unitStr != "" {
		unit, err := ParseUnit(unitStr)
		if err != nil {
			return fmt.Errorf("WNW_UNIT: %w", err)
		}
		config.Walk.Unit = unit
	}

	if minStr := os.Getenv("WNW_MIN"); minStr != "" {
		minLen, err := strconv.Atoi(minStr)
		if err != nil {
			return fmt.Errorf("WNW_MIN: %w", err)
		}
		config.Walk.Min = minLen
	}

	if dirStr := os.Getenv("WNW_DIRECTION"); dirStr != "" {
		dir, err := ParseDirection(dirStr)
		if err != nil {
			return fmt.Errorf("WNW_DIRECTION: %w", err)
		}
		config.Walk.Direction = dir
	}

	if seedStr := os.Getenv("WNW_SEED"); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return fmt.Errorf("WNW_SEED: %w", err)
		}
		config.Walk.Seed = seed
	}

	if dir := os.Getenv("WNW_WORDNET_DIR"); dir != "" {
		config.Walk.WordNetDir = dir
	}

	if path := os.Getenv("WNW_HIERARCHY"); path != "" {
		config.Walk.HierarchyPath = path
	}

	return nil
}

/*
Validate checks the statistics configuration
*/
func (c *StatsConfig) Validate() error {
	if c.Corpus == "" {
		return fmt.Errorf("corpus path is required")
	}
	return nil
}

/*
Validate checks the similarity configuration
*/
func (c *SimilarityConfig) Validate() error {
	if c.Vecs1 == "" {
		return fmt.Errorf("vecs1 is required")
	}
	if c.Word2Idx2 != "" && c.Vecs2 == "" {
		return fmt.Errorf("word2idx2 given without vecs2")
	}
	if c.Test == "" {
		return fmt.Errorf("test path is required")
	}
	if c.Out == "" {
		return fmt.Errorf("out path is required")
	}
	return nil
}

/*
Validate checks the walk configuration, including its input and output paths
*/
func (c *WalkConfig) Validate() error {
	if err := c.ValidateParams(); err != nil {
		return err
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if (c.WordNetDir == "") == (c.HierarchyPath == "") {
		return fmt.Errorf("exactly one of wordnet dir and hierarchy file is required")
	}
	return nil
}

/*
ValidateParams checks the parameters of the walk itself
*/
func (c *WalkConfig) ValidateParams() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("invalid alpha: %v (must be in (0, 1))", c.Alpha)
	}
	if c.Size <= 0 {
		return fmt.Errorf("invalid size: %d", c.Size)
	}
	if c.Min < 1 {
		return fmt.Errorf("invalid min sentence length: %d", c.Min)
	}
	if c.Unit != UnitLine && c.Unit != UnitToken {
		return fmt.Errorf("invalid unit: %d", c.Unit)
	}
	if c.Direction != DirectionUp && c.Direction != DirectionDown && c.Direction != DirectionBoth {
		return fmt.Errorf("invalid direction: %d", c.Direction)
	}
	return nil
}
