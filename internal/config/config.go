// Package config loads bounce settings from defaults, an optional YAML
// file, BOUNCE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/keyframe"
	"github.com/abhisek/bounce/internal/routinegen"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "BOUNCE"

// Config holds all bounce configuration.
type Config struct {
	Scoring   ScoringConfig        `mapstructure:"scoring"`
	Generator GeneratorConfig      `mapstructure:"generator"`
	Render    keyframe.RenderProps `mapstructure:"render"`
	Data      DataConfig           `mapstructure:"data"`
}

// ScoringConfig selects how difficulty is computed.
type ScoringConfig struct {
	System        string  `mapstructure:"system"` // "mens" or "womens"
	MinDifficulty float64 `mapstructure:"min_difficulty"`
}

// GeneratorConfig bounds routine generation.
type GeneratorConfig struct {
	MaxAttempts int    `mapstructure:"max_attempts"`
	MaxLength   int    `mapstructure:"max_length"`
	Seed        uint64 `mapstructure:"seed"` // 0 picks a random seed
}

// DataConfig lists extra catalog files merged over the embedded ones.
type DataConfig struct {
	SkillSources       []string `mapstructure:"skills"`
	RequirementSources []string `mapstructure:"requirements"`
}

// DefaultConfig returns a Config with sensible defaults. Render budgets
// are zero so they are derived per skill.
func DefaultConfig() Config {
	gen := routinegen.DefaultConfig()
	return Config{
		Scoring: ScoringConfig{
			System:        string(difficulty.Mens),
			MinDifficulty: difficulty.MinDifficulty,
		},
		Generator: GeneratorConfig{
			MaxAttempts: gen.MaxAttempts,
			MaxLength:   gen.MaxLength,
		},
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key so environment overrides are picked up
// by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("scoring.system", d.Scoring.System)
	v.SetDefault("scoring.min_difficulty", d.Scoring.MinDifficulty)
	v.SetDefault("generator.max_attempts", d.Generator.MaxAttempts)
	v.SetDefault("generator.max_length", d.Generator.MaxLength)
	v.SetDefault("generator.seed", d.Generator.Seed)
	v.SetDefault("render.stall_rotation", d.Render.StallRotation)
	v.SetDefault("render.kickout_rotation", d.Render.KickoutRotation)
	v.SetDefault("render.enter_rotation", d.Render.EnterRotation)
	v.SetDefault("data.skills", []string{})
	v.SetDefault("data.requirements", []string{})
}

// DefaultDir returns the directory searched for config.yaml.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "bounce"), nil
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; otherwise a missing config.yaml in DefaultDir is fine.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that values are in range.
func (c Config) Validate() error {
	switch difficulty.System(c.Scoring.System) {
	case difficulty.Mens, difficulty.Womens:
	default:
		return fmt.Errorf("unknown scoring system: %q", c.Scoring.System)
	}
	if c.Scoring.MinDifficulty < 0 {
		return fmt.Errorf("scoring.min_difficulty must not be negative, got %g", c.Scoring.MinDifficulty)
	}
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("generator.max_attempts must be positive, got %d", c.Generator.MaxAttempts)
	}
	if c.Generator.MaxLength <= 0 {
		return fmt.Errorf("generator.max_length must be positive, got %d", c.Generator.MaxLength)
	}
	if c.Render.StallRotation < 0 || c.Render.KickoutRotation < 0 || c.Render.EnterRotation < 0 {
		return errors.New("render rotations must not be negative")
	}
	return nil
}

// System returns the configured scoring system.
func (c Config) System() difficulty.System {
	return difficulty.System(c.Scoring.System)
}

// Scorer builds a difficulty scorer honouring the configured floor.
func (c Config) Scorer() *difficulty.Scorer {
	return difficulty.NewScorer(difficulty.WithMinDifficulty(c.Scoring.MinDifficulty))
}

// GeneratorOptions translates the generator settings into routinegen options.
func (c Config) GeneratorOptions() []routinegen.Option {
	opts := []routinegen.Option{routinegen.WithConfig(routinegen.Config{
		MaxAttempts: c.Generator.MaxAttempts,
		MaxLength:   c.Generator.MaxLength,
	})}
	if c.Generator.Seed != 0 {
		opts = append(opts, routinegen.WithSeed(c.Generator.Seed))
	}
	return opts
}
