package main

import (
	"fmt"
	"os"
	"tictactoe/config"
	"tictactoe/experiments"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg        config.Config
	configPath string
	episodes   int
	seed       uint64
	outputDir  string
	logLevel   string
	dumpMemory bool
	evalGames  int
	parallel   int

	rootCmd = &cobra.Command{
		Use:   "tictactoe",
		Short: "Train tic-tac-toe agents through self-play",
		Long: `tictactoe trains two tabular agents against each other, storing one
entry per board symmetry class, and evaluates them against a random player.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Run one self-play training and evaluation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := experiments.RunTraining(cmd.Context(), cfg)
			return err
		},
	}

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Run the config's sweep entries as independent trainings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := experiments.RunSweep(cmd.Context(), cfg, parallel)
			if err != nil {
				return err
			}
			for _, r := range results {
				run, _ := r.Phase(experiments.EvaluationXPhase)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: boards %d/%d, x wins vs random %d of %d\n",
					r.Name, r.X.MemorizedBoards(), r.O.MemorizedBoards(), run.XWins, run.Games)
			}
			return nil
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.IntVar(&episodes, "episodes", 0, "number of self-play episodes")
	flags.Uint64Var(&seed, "seed", 0, "random seed of the run")
	flags.StringVar(&outputDir, "out", "", "directory for CSV records and memory dumps")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&dumpMemory, "dump-memory", false, "write every memorized board after training")
	flags.IntVar(&evalGames, "eval-games", 0, "games against the random baseline per side")

	sweepCmd.Flags().IntVar(&parallel, "parallel", 2, "number of runs trained at once")

	rootCmd.AddCommand(trainCmd, sweepCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("episodes") {
		loaded.Episodes = episodes
	}
	if flags.Changed("seed") {
		loaded.Seed = seed
	}
	if flags.Changed("out") {
		loaded.Output.Dir = outputDir
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("dump-memory") {
		loaded.Output.DumpMemory = dumpMemory
	}
	if flags.Changed("eval-games") {
		loaded.Evaluation.Games = evalGames
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	level, err := zerolog.ParseLevel(loaded.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", loaded.Log.Level, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg = loaded
	return nil
}
