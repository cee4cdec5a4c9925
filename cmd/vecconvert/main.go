package main

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wordnet-walk/config"
	"wordnet-walk/embedding"
	"wordnet-walk/input"
	"wordnet-walk/internal/runinfo"
)

// Input formats.
const (
	formatWord2Vec = "word2vec"
	formatText     = "text"
)

type options struct {
	input     string
	format    string
	vocabOut  string
	matrixOut string
	lower     bool
	words     string
	random    int
	seed      uint64
	logLevel  string
}

func main() {
	// load the environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{format: formatWord2Vec, logLevel: cfg.LogLevel}

	cmd := &cobra.Command{
		Use:           "vecconvert",
		Short:         "Convert word vectors to a vocabulary JSON plus binary matrix",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.input, "input", "", "Source vector file")
	flags.StringVar(&opts.format, "format", opts.format, "Source format (word2vec|text)")
	flags.StringVar(&opts.vocabOut, "vocab-out", "", "Output vocabulary JSON")
	flags.StringVar(&opts.matrixOut, "matrix-out", "", "Output matrix file")
	flags.BoolVar(&opts.lower, "lower", false, "Lower-case words; the first vector of a folded word wins")
	flags.StringVar(&opts.words, "words", "", "Keep only the words listed in this file, one per line")
	flags.IntVar(&opts.random, "random", 0, "Also keep this many random words (with --words)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for --random, 0 for a time-based seed")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level (debug, info, warn, error)")
	return cmd
}

func (o *options) validate() error {
	if o.input == "" {
		return fmt.Errorf("input path is required")
	}
	if o.format != formatWord2Vec && o.format != formatText {
		return fmt.Errorf("unknown format %q (expected %s or %s)", o.format, formatWord2Vec, formatText)
	}
	if o.vocabOut == "" || o.matrixOut == "" {
		return fmt.Errorf("vocab-out and matrix-out are required")
	}
	if o.random < 0 {
		return fmt.Errorf("invalid random word count: %d", o.random)
	}
	if o.random > 0 && o.words == "" {
		return fmt.Errorf("random requires a words file")
	}
	return nil
}

func run(opts *options) error {
	logger := runinfo.NewLogger(opts.logLevel, "vecconvert")

	table, err := load(opts)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"words": len(table.Vocab),
		"dim":   table.Dim(),
	}).Info("Loaded vectors")

	if opts.words != "" {
		if table, err = sample(table, opts, logger); err != nil {
			return err
		}
	}

	if err := embedding.SaveIndexed(table, opts.vocabOut, opts.matrixOut); err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"words":  len(table.Vocab),
		"vocab":  opts.vocabOut,
		"matrix": opts.matrixOut,
	}).Info("Wrote vectors")
	return nil
}

func load(opts *options) (*embedding.Table, error) {
	if opts.format == formatText {
		table, err := embedding.LoadRetrofit(opts.input)
		if err != nil {
			return nil, err
		}
		if opts.lower {
			table = lowerVocab(table)
		}
		return table, nil
	}

	f, err := input.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return embedding.ReadWord2Vec(f, opts.input, opts.lower)
}

// lowerVocab folds the vocabulary to lower case; the lowest row index wins.
func lowerVocab(t *embedding.Table) *embedding.Table {
	words := vocabByIndex(t)
	vocab := make(map[string]int, len(words))
	for _, word := range words {
		lw := strings.ToLower(word)
		if _, seen := vocab[lw]; !seen {
			vocab[lw] = t.Vocab[word]
		}
	}
	return &embedding.Table{Vocab: vocab, Vectors: t.Vectors}
}

func vocabByIndex(t *embedding.Table) []string {
	words := make([]string, 0, len(t.Vocab))
	for word := range t.Vocab {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		return t.Vocab[words[i]] < t.Vocab[words[j]]
	})
	return words
}

// sample keeps the listed words plus opts.random other words of the table.
func sample(t *embedding.Table, opts *options, logger *log.Entry) (*embedding.Table, error) {
	var wanted []string
	err := input.EachFileLine(opts.words, func(_ int, line string) error {
		word := strings.TrimSpace(line)
		if opts.lower {
			word = strings.ToLower(word)
		}
		if word != "" {
			wanted = append(wanted, word)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.random > 0 {
		seed := opts.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		wanted = append(wanted, randomWords(t, wanted, opts.random, rand.New(rand.NewPCG(seed, seed)))...)
	}

	sub, missing := t.Subset(wanted)
	if len(missing) > 0 {
		logger.WithField("missing", len(missing)).Warnf("Words not found, e.g. %q", missing[0])
	}
	if sub.Len() == 0 {
		return nil, input.Empty(opts.words)
	}
	return sub, nil
}

// randomWords draws up to n distinct table words not in exclude.
func randomWords(t *embedding.Table, exclude []string, n int, rng *rand.Rand) []string {
	skip := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		skip[w] = true
	}
	var pool []string
	for _, w := range vocabByIndex(t) {
		if !skip[w] {
			pool = append(pool, w)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
