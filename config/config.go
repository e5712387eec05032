package config

import (
	"errors"
	"fmt"
	"os"
	"tictactoe/meta"

	"gopkg.in/yaml.v3"
)

// Config contains everything a training run needs.
type Config struct {
	Name       string           `yaml:"name"`
	Episodes   int              `yaml:"episodes"`
	Seed       uint64           `yaml:"seed"`
	Agent      AgentConfig      `yaml:"agent"`
	Rewards    RewardsConfig    `yaml:"rewards"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
	Sweep      []SweepEntry     `yaml:"sweep"`
}

// AgentConfig contains the learner's exploration settings.
type AgentConfig struct {
	Epsilon float64 `yaml:"epsilon"`
	Decay   float64 `yaml:"decay"`
	Floor   float64 `yaml:"floor"`
}

type RewardsConfig struct {
	Win  int `yaml:"win"`
	Loss int `yaml:"loss"`
	Draw int `yaml:"draw"`
}

type EvaluationConfig struct {
	Games int `yaml:"games"`
}

type OutputConfig struct {
	Dir        string `yaml:"dir"`
	DumpMemory bool   `yaml:"dump_memory"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Interval int    `yaml:"interval"`
}

// SweepEntry overrides agent settings for one run of a sweep. Unset fields
// keep the shared agent settings.
type SweepEntry struct {
	Name    string   `yaml:"name"`
	Epsilon *float64 `yaml:"epsilon"`
	Decay   *float64 `yaml:"decay"`
	Floor   *float64 `yaml:"floor"`
}

func (e SweepEntry) apply(agent AgentConfig) AgentConfig {
	if e.Epsilon != nil {
		agent.Epsilon = *e.Epsilon
	}
	if e.Decay != nil {
		agent.Decay = *e.Decay
	}
	if e.Floor != nil {
		agent.Floor = *e.Floor
	}
	return agent
}

func Default() Config {
	return Config{
		Name:     "training",
		Episodes: meta.EPISODES,
		Agent: AgentConfig{
			Epsilon: meta.EPSILON,
			Decay:   meta.EPSILON_DECAY,
			Floor:   meta.EPSILON_FLOOR,
		},
		Rewards: RewardsConfig{
			Win:  meta.WIN_REWARD,
			Loss: meta.LOSS_REWARD,
			Draw: meta.DRAW_REWARD,
		},
		Evaluation: EvaluationConfig{Games: meta.EVALUATION_GAMES},
		Output:     OutputConfig{Dir: "experiments"},
		Log:        LogConfig{Level: "info", Interval: meta.LOG_INTERVAL},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c AgentConfig) Validate() error {
	var errs []error
	if c.Epsilon < 0 || c.Epsilon > 1 {
		errs = append(errs, fmt.Errorf("epsilon %v is outside [0, 1]", c.Epsilon))
	}
	if c.Decay <= 0 || c.Decay > 1 {
		errs = append(errs, fmt.Errorf("decay %v is outside (0, 1]", c.Decay))
	}
	if c.Floor < 0 || c.Floor > 1 {
		errs = append(errs, fmt.Errorf("floor %v is outside [0, 1]", c.Floor))
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Episodes <= 0 {
		errs = append(errs, fmt.Errorf("episodes must be positive, got %d", c.Episodes))
	}
	if c.Evaluation.Games < 0 {
		errs = append(errs, fmt.Errorf("evaluation games must not be negative, got %d", c.Evaluation.Games))
	}
	if c.Log.Interval < 0 {
		errs = append(errs, fmt.Errorf("log interval must not be negative, got %d", c.Log.Interval))
	}
	if err := c.Agent.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("agent: %w", err))
	}
	seen := map[string]int{}
	for i, entry := range c.Sweep {
		if entry.Name == "" {
			errs = append(errs, fmt.Errorf("sweep entry %d has no name", i))
		} else if first, ok := seen[entry.Name]; ok {
			// Variants with one name share an output directory.
			errs = append(errs, fmt.Errorf("sweep entry %d reuses name %q of entry %d", i, entry.Name, first))
		} else {
			seen[entry.Name] = i
		}
		if err := entry.apply(c.Agent).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sweep entry %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Variants expands the sweep into one config per entry. Each variant keeps
// the shared settings and gets its own name and seed.
func (c Config) Variants() []Config {
	variants := make([]Config, 0, len(c.Sweep))
	for i, entry := range c.Sweep {
		v := c
		v.Name = entry.Name
		v.Agent = entry.apply(c.Agent)
		v.Seed = c.Seed + uint64(i)*2
		v.Sweep = nil
		variants = append(variants, v)
	}
	return variants
}
