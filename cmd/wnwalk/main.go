package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wordnet-walk/config"
	"wordnet-walk/hierarchy"
	"wordnet-walk/internal/runinfo"
	"wordnet-walk/walk"
)

// rough output size per counter unit, for the disk space warning
const (
	bytesPerLine  = 64
	bytesPerToken = 8
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
	wc := &cfg.Walk
	unit := wc.Unit.String()
	direction := wc.Direction.String()
	mwe := config.YesNo(wc.SplitMWE)

	cmd := &cobra.Command{
		Use:           "wnwalk",
		Short:         "Generate a corpus by random walks over WordNet",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if wc.Unit, err = config.ParseUnit(unit); err != nil {
				return err
			}
			if wc.Direction, err = config.ParseDirection(direction); err != nil {
				return err
			}
			if wc.SplitMWE, err = config.ParseYesNo(mwe); err != nil {
				return err
			}
			if err := wc.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&wc.Alpha, "alpha", wc.Alpha, "Probability of continuing a walk")
	flags.IntVar(&wc.Size, "size", wc.Size, "Corpus size in units")
	flags.StringVar(&unit, "unit", unit, "Unit of --size (line|token)")
	flags.StringVar(&wc.Output, "output", wc.Output, "Output corpus file")
	flags.IntVar(&wc.Min, "min", wc.Min, "Minimum sentence length in lemmas")
	flags.StringVar(&direction, "direction", direction, "Walk direction (up|down|both)")
	flags.StringVar(&mwe, "mwe", mwe, "Split multi-word expressions into words (yes|no)")
	flags.Uint64Var(&wc.Seed, "seed", wc.Seed, "Random seed, 0 for a time-based seed")
	flags.StringVar(&wc.WordNetDir, "wordnet", wc.WordNetDir, "WordNet dict directory")
	flags.StringVar(&wc.HierarchyPath, "hierarchy", wc.HierarchyPath, "Hierarchy JSON file, instead of --wordnet")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	return cmd
}

func run(cfg *config.Config) error {
	logger := runinfo.NewLogger(cfg.LogLevel, "wnwalk")
	wc := cfg.Walk

	graph, err := loadHierarchy(wc, logger)
	if err != nil {
		return err
	}

	seed := wc.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.WithField("seed", seed).Info("Seeded generator")

	gen, err := walk.NewGenerator(graph, wc, rand.New(rand.NewPCG(seed, seed)), logger)
	if err != nil {
		return err
	}
	gen.Progress = os.Stdout

	perUnit := uint64(bytesPerLine)
	if wc.Unit == config.UnitToken {
		perUnit = bytesPerToken
	}
	runinfo.CheckDisk(wc.Output, uint64(wc.Size)*perUnit, logger)

	out, err := os.Create(wc.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", wc.Output, err)
	}
	defer out.Close()

	res, err := gen.Run(out)
	if err != nil {
		return fmt.Errorf("write %s: %w", wc.Output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return walk.WriteReport(os.Stdout, res)
}

func loadHierarchy(wc config.WalkConfig, logger *log.Entry) (hierarchy.Graph, error) {
	if wc.HierarchyPath != "" {
		return hierarchy.LoadJSON(wc.HierarchyPath)
	}
	return hierarchy.LoadWordNet(wc.WordNetDir, logger)
}
