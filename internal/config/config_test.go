package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/skilldef"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, difficulty.Mens, cfg.System())
	assert.Equal(t, 100, cfg.Generator.MaxAttempts)
	assert.Equal(t, 10, cfg.Generator.MaxLength)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scoring, cfg.Scoring)
	assert.Equal(t, DefaultConfig().Generator, cfg.Generator)
	assert.Empty(t, cfg.Data.SkillSources)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bounce.yaml")
	doc := `
scoring:
  system: womens
  min_difficulty: 0.2
generator:
  max_attempts: 25
  seed: 7
render:
  stall_rotation: 0.3
data:
  skills: [extra.json]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Womens, cfg.System())
	assert.Equal(t, 0.2, cfg.Scoring.MinDifficulty)
	assert.Equal(t, 25, cfg.Generator.MaxAttempts)
	assert.Equal(t, 10, cfg.Generator.MaxLength)
	assert.Equal(t, uint64(7), cfg.Generator.Seed)
	assert.Equal(t, 0.3, cfg.Render.StallRotation)
	assert.Equal(t, []string{"extra.json"}, cfg.Data.SkillSources)
	assert.Len(t, cfg.GeneratorOptions(), 2)
}

func TestLoad_DefaultDirFile(t *testing.T) {
	isolate(t)
	dir, err := DefaultDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("generator:\n  max_length: 6\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Generator.MaxLength)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BOUNCE_SCORING_SYSTEM", "womens")
	t.Setenv("BOUNCE_GENERATOR_MAX_ATTEMPTS", "12")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, difficulty.Womens, cfg.System())
	assert.Equal(t, 12, cfg.Generator.MaxAttempts)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("BOUNCE_SCORING_SYSTEM", "juniors")
	_, err := Load(New(), "")
	assert.ErrorContains(t, err, "unknown scoring system")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"system", func(c *Config) { c.Scoring.System = "" }},
		{"min difficulty", func(c *Config) { c.Scoring.MinDifficulty = -1 }},
		{"attempts", func(c *Config) { c.Generator.MaxAttempts = 0 }},
		{"length", func(c *Config) { c.Generator.MaxLength = -3 }},
		{"render", func(c *Config) { c.Render.EnterRotation = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScorer_UsesFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.MinDifficulty = 0.3
	tuckJump := skilldef.SkillDefinition{
		Name:             "Tuck Jump",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Twists:           []float64{0},
		Position:         skilldef.Tuck,
	}
	assert.Equal(t, 0.3, cfg.Scorer().Score(tuckJump))
}
