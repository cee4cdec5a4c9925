package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wordnet-walk/config"
	"wordnet-walk/corpus"
	"wordnet-walk/internal/runinfo"
)

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
	rare := config.YesNo(cfg.Stats.Rare)
	unique := config.YesNo(cfg.Stats.UniqueSentences)

	cmd := &cobra.Command{
		Use:           "corpusstats",
		Short:         "Print statistics of a sentence-per-line corpus",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg.Stats.Rare, err = config.ParseYesNo(rare); err != nil {
				return err
			}
			if cfg.Stats.UniqueSentences, err = config.ParseYesNo(unique); err != nil {
				return err
			}
			if err := cfg.Stats.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Stats.Corpus, "corpus", cfg.Stats.Corpus, "Path to the corpus, one sentence per line")
	flags.StringVar(&rare, "rare", rare, "Print only the rare words (yes|no)")
	flags.StringVar(&unique, "unique_sentences", unique, "Count duplicate sentences and lengths (yes|no)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	return cmd
}

func run(cfg *config.Config) error {
	logger := runinfo.NewLogger(cfg.LogLevel, "corpusstats")
	sc := cfg.Stats

	// only the rare list skips the bag-of-words pass
	track := sc.UniqueSentences && !sc.Rare
	if track {
		runinfo.CheckMemory(sc.Corpus, logger)
	}

	stats, err := corpus.AnalyzeFile(sc.Corpus, track)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"sentences": stats.Sentences(),
		"tokens":    stats.Tokens(),
	}).Info("Corpus analyzed")

	if sc.Rare {
		return stats.WriteRareList(os.Stdout)
	}
	return stats.WriteReport(os.Stdout, sc.UniqueSentences)
}
