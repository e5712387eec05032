package experiments

import (
	"context"
	"fmt"
	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	TrainingPhase    = "training"
	EvaluationXPhase = "evaluation_x" // Learner X against the random baseline
	EvaluationOPhase = "evaluation_o" // Random baseline against learner O
)

// Result is the outcome of one training run.
type Result struct {
	Name    string
	Summary []metrics.SummaryRecord
	Dir     string // Empty when nothing was written
	X       *agent.Learner
	O       *agent.Learner
}

// Phase returns the summary of the named phase.
func (r Result) Phase(name string) (metrics.RunMetric, bool) {
	for _, s := range r.Summary {
		if s.Phase == name {
			return s.RunMetric, true
		}
	}
	return metrics.RunMetric{}, false
}

func newLearner(name string, seed uint64, cfg config.AgentConfig) *agent.Learner {
	return agent.NewLearner(
		agent.WithName(name),
		agent.WithSeed(seed),
		agent.WithEpsilon(cfg.Epsilon),
		agent.WithDecay(cfg.Decay),
		agent.WithFloor(cfg.Floor),
	)
}

// RunTraining trains two learners against each other, evaluates both against
// the random baseline and stores the records when an output dir is set.
func RunTraining(ctx context.Context, cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}

	rewards := engine.Rewards{Win: cfg.Rewards.Win, Loss: cfg.Rewards.Loss, Draw: cfg.Rewards.Draw}
	x := newLearner(cfg.Name+"-x", cfg.Seed, cfg.Agent)
	o := newLearner(cfg.Name+"-o", cfg.Seed+1, cfg.Agent)

	log.Info().Msgf("starting %s run with %d episodes...", cfg.Name, cfg.Episodes)

	records := make([]metrics.GameRecord, 0, cfg.Episodes+2*cfg.Evaluation.Games)
	collector := metrics.NewCollector()
	collector.Start()
	e := engine.NewLocal(x, o, rewards)
	for i := 0; i < cfg.Episodes; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%s run stopped at episode %d: %w", cfg.Name, i, err)
		}

		_, gameMetric := e.Run()
		collector.AddGame(gameMetric)
		records = append(records, metrics.GameRecord{
			ID:              len(records) + 1,
			Phase:           TrainingPhase,
			AgentX:          1,
			AgentO:          2,
			EpsilonX:        x.Epsilon(),
			EpsilonO:        o.Epsilon(),
			MemorizedBoards: x.MemorizedBoards() + o.MemorizedBoards(),
			GameMetric:      gameMetric,
		})

		if cfg.Log.Interval > 0 && (i+1)%cfg.Log.Interval == 0 {
			m := collector.Complete()
			log.Info().Msgf("%s episode %d of %d: x wins %d, o wins %d, draws %d, boards %d/%d, epsilon %.3f/%.3f",
				cfg.Name, i+1, cfg.Episodes, m.XWins, m.OWins, m.Draws,
				x.MemorizedBoards(), o.MemorizedBoards(), x.Epsilon(), o.Epsilon())
		}
	}
	summary := []metrics.SummaryRecord{{Phase: TrainingPhase, RunMetric: collector.Complete()}}
	log.Info().Msgf("completed %s training", cfg.Name)

	matchUps := []struct {
		phase  string
		x, o   agent.Agent
		ax, ao int
	}{
		{EvaluationXPhase, agent.NewEvaluationAgent(x), agent.NewRandomAgent(cfg.Seed + 2), 1, 0},
		{EvaluationOPhase, agent.NewRandomAgent(cfg.Seed + 3), agent.NewEvaluationAgent(o), 0, 2},
	}
	for _, m := range matchUps {
		if cfg.Evaluation.Games == 0 {
			break
		}
		collector.Start()
		e := engine.NewLocal(m.x, m.o, rewards)
		for i := 0; i < cfg.Evaluation.Games; i++ {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("%s evaluation stopped at game %d: %w", cfg.Name, i, err)
			}
			_, gameMetric := e.Run()
			collector.AddGame(gameMetric)
			records = append(records, metrics.GameRecord{
				ID:         len(records) + 1,
				Phase:      m.phase,
				AgentX:     m.ax,
				AgentO:     m.ao,
				GameMetric: gameMetric,
			})
		}
		run := collector.Complete()
		summary = append(summary, metrics.SummaryRecord{Phase: m.phase, RunMetric: run})
		log.Info().Msgf("%s %s: x wins %.1f%%, o wins %.1f%%, draws %.1f%%", cfg.Name, m.phase,
			100*run.Share(game.X), 100*run.Share(game.O), 100*run.Share(game.Empty))
	}

	result := Result{Name: cfg.Name, Summary: summary, X: x, O: o}
	if cfg.Output.Dir == "" {
		return result, nil
	}

	dir, err := store(cfg, x, o, records, summary)
	if err != nil {
		return Result{}, err
	}
	result.Dir = dir
	return result, nil
}

func store(cfg config.Config, x, o *agent.Learner, records []metrics.GameRecord, summary []metrics.SummaryRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output.Dir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := []metrics.AgentConfig{
		{ID: 1, Name: x.Name(), Epsilon: cfg.Agent.Epsilon, Decay: cfg.Agent.Decay, Floor: cfg.Agent.Floor, Seed: cfg.Seed},
		{ID: 2, Name: o.Name(), Epsilon: cfg.Agent.Epsilon, Decay: cfg.Agent.Decay, Floor: cfg.Agent.Floor, Seed: cfg.Seed + 1},
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(records); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteSummary(summary); err != nil {
		return "", err
	}
	log.Info().Msg("stored summary")

	if cfg.Output.DumpMemory {
		for _, l := range []*agent.Learner{x, o} {
			if err := writer.WriteMemory(l.Name(), l.Memory()); err != nil {
				return "", err
			}
		}
		log.Info().Msg("stored memory dumps")
	}
	return writer.Dir(), nil
}

// RunSweep trains every sweep variant of cfg independently, at most parallel
// runs at a time. Runs share nothing but the logger.
func RunSweep(ctx context.Context, cfg config.Config, parallel int) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep config %s: %w", cfg.Name, err)
	}
	variants := cfg.Variants()
	if len(variants) == 0 {
		return nil, fmt.Errorf("config %s has no sweep entries", cfg.Name)
	}

	results := make([]Result, len(variants))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, variant := range variants {
		i, variant := i, variant
		g.Go(func() error {
			result, err := RunTraining(ctx, variant)
			if err != nil {
				return fmt.Errorf("sweep run %s failed: %w", variant.Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed sweep of %d runs", len(results))
	return results, nil
}
