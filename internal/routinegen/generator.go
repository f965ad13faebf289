// Package routinegen builds random routines that chain bed positions
// correctly and, when given a requirement, try to satisfy it.
package routinegen

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/bounce/internal/skilldef"
)

// Config bounds the generator's search.
type Config struct {
	// MaxAttempts is the number of random routines tried per pass.
	MaxAttempts int

	// MaxLength caps routines when the requirement does not fix a length.
	MaxLength int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 100,
		MaxLength:   10,
	}
}

// Generator produces random routines. It is not safe for concurrent use
// because it owns its random source.
type Generator struct {
	rng    *rand.Rand
	logger *slog.Logger
	cfg    Config
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a PCG source for reproducible output.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger used for degradation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithConfig replaces the search bounds. Non-positive fields keep defaults.
func WithConfig(c Config) Option {
	return func(g *Generator) {
		if c.MaxAttempts > 0 {
			g.cfg.MaxAttempts = c.MaxAttempts
		}
		if c.MaxLength > 0 {
			g.cfg.MaxLength = c.MaxLength
		}
	}
}

// New creates a Generator. Without WithRand or WithSeed it draws a random seed.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.DiscardHandler),
		cfg:    DefaultConfig(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Config returns the generator's effective bounds.
func (g *Generator) Config() Config {
	return g.cfg
}

// GenerateValid builds a routine of at most maxLength skills starting from
// Standing, or from any pool skill when none starts there. Each later step
// picks a random pool skill whose starting position matches the previous
// ending position, in a random possible body position. Picked definitions
// are not reused. The routine ends early when no continuation exists.
func (g *Generator) GenerateValid(pool []skilldef.SkillDefinition, maxLength int) []skilldef.SkillDefinition {
	if len(pool) == 0 {
		g.logger.Warn("routine generation skipped: empty skill pool")
		return nil
	}

	remaining := slices.Clone(pool)
	routine := make([]skilldef.SkillDefinition, 0, max(maxLength, 0))
	current := skilldef.Standing

	for len(routine) < maxLength {
		var idx []int
		for i, s := range remaining {
			if s.StartingPosition == current {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 && len(routine) == 0 {
			g.logger.Debug("no standing start in pool, starting anywhere", "pool", len(remaining))
			idx = make([]int, len(remaining))
			for i := range idx {
				idx[i] = i
			}
		}
		if len(idx) == 0 {
			g.logger.Debug("no compatible continuation",
				"from", current, "length", len(routine), "target", maxLength)
			break
		}

		i := idx[g.rng.IntN(len(idx))]
		pick := remaining[i]
		remaining = slices.Delete(remaining, i, i+1)

		positions := pick.Positions()
		inst := pick.WithPosition(positions[g.rng.IntN(len(positions))])
		routine = append(routine, inst)
		current = inst.EndingPosition
	}
	return routine
}
