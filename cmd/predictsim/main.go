package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wordnet-walk/config"
	"wordnet-walk/internal/runinfo"
	"wordnet-walk/similarity"
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
	sc := &cfg.Similarity

	cmd := &cobra.Command{
		Use:           "predictsim",
		Short:         "Score word pairs by the cosine similarity of their embeddings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sc.Validate(); err != nil {
				return err
			}
			logger := runinfo.NewLogger(cfg.LogLevel, "predictsim")

			predictor, err := similarity.FromConfig(*sc, logger)
			if err != nil {
				return err
			}
			_, err = predictor.PredictFile(sc.Test, sc.Out)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sc.Vecs1, "vecs1", sc.Vecs1, "First embedding file (matrix, or retrofit text without --word2idx1)")
	flags.StringVar(&sc.Word2Idx1, "word2idx1", sc.Word2Idx1, "Vocabulary JSON for --vecs1")
	flags.StringVar(&sc.Vecs2, "vecs2", sc.Vecs2, "Optional second embedding file, concatenated to the first")
	flags.StringVar(&sc.Word2Idx2, "word2idx2", sc.Word2Idx2, "Vocabulary JSON for --vecs2")
	flags.BoolVar(&sc.SumMWE, "smwe", sc.SumMWE, "Sum the vectors of the words of a multi-word expression")
	flags.BoolVar(&sc.Default, "default", sc.Default, "Use the mean vector for unknown words")
	flags.StringVar(&sc.Test, "test", sc.Test, "Word pairs, one tab-separated pair per line")
	flags.StringVar(&sc.Out, "out", sc.Out, "Output file for the scores")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	return cmd
}
