package difficulty

import (
	"math"

	"github.com/abhisek/bounce/internal/skilldef"
)

// System selects the scoring rules applied to a whole routine.
type System string

const (
	Mens   System = "mens"
	Womens System = "womens"
)

// TripleAllowance returns how many triple-or-greater somersaults a routine
// may contain before each further one is penalised.
func (s System) TripleAllowance() int {
	if s == Womens {
		return WomensTripleAllowance
	}
	return MensTripleAllowance
}

const (
	// MinDifficulty is the default floor for any non-trivial skill.
	MinDifficulty = 0.1

	MensTripleAllowance   = 2
	WomensTripleAllowance = 1

	// TriplePenalty is deducted per triple beyond the allowance.
	TriplePenalty = 0.3
)

// rotationBands holds the base score for 1..4 completed flips.
var rotationBands = [5]float64{0, 0.5, 1.0, 1.6, 2.2}

// backBonus holds the extra score for back skills at 1..4 completed flips.
var backBonus = [5]float64{0, 0, 0.1, 0.2, 0.3}

// Scorer computes difficulty scores, memoizing per-skill results.
type Scorer struct {
	cache Cache
	min   float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithCache replaces the default in-memory cache.
func WithCache(c Cache) Option {
	return func(s *Scorer) { s.cache = c }
}

// WithMinDifficulty overrides the score floor.
func WithMinDifficulty(min float64) Option {
	return func(s *Scorer) { s.min = min }
}

// NewScorer creates a Scorer with a fresh MemoryCache.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{cache: NewMemoryCache(), min: MinDifficulty}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Cache exposes the scorer's cache, mainly so tests can reset it.
func (s *Scorer) Cache() Cache {
	return s.cache
}

// Score returns the difficulty of a single skill, rounded to 2 decimals.
func (s *Scorer) Score(skill skilldef.SkillDefinition) float64 {
	total := skill.TotalTwists()
	if skill.Flips == 0 && total == 0 && skill.Position == skilldef.Straight {
		return 0
	}

	key := cacheKey(skill)
	if v, ok := s.cache.Get(key); ok {
		return v
	}

	score := Round2(RotationScore(skill) + TwistScore(skill) + PositionScore(skill))
	score = math.Max(score, s.min)
	s.cache.Put(key, score)
	return score
}

// RoutineScore sums the per-skill scores and deducts TriplePenalty for each
// triple-or-greater somersault beyond the system's allowance.
func (s *Scorer) RoutineScore(routine []skilldef.SkillDefinition, system System) float64 {
	var sum float64
	triples := 0
	for _, skill := range routine {
		sum += s.Score(skill)
		if skill.Flips >= 3 {
			triples++
		}
	}
	if extra := triples - system.TripleAllowance(); extra > 0 {
		sum -= TriplePenalty * float64(extra)
	}
	return Round2(math.Max(sum, 0))
}

// RotationScore scores completed flip bands plus 0.1 per extra quarter flip.
func RotationScore(skill skilldef.SkillDefinition) float64 {
	completed := int(math.Floor(skill.Flips + epsilon))
	if completed > 4 {
		completed = 4
	}

	score := rotationBands[completed]
	if skill.IsBackSkill {
		score += backBonus[completed]
	}

	quarters := math.Floor((skill.Flips-float64(completed))/0.25 + epsilon)
	if quarters > 0 {
		score += 0.1 * quarters
	}
	return score
}

// TwistScore scores 0.1 per half twist with multi-flip bonuses.
func TwistScore(skill skilldef.SkillDefinition) float64 {
	half := math.Floor(skill.TotalTwists()/0.5 + epsilon)
	score := 0.1 * half

	switch {
	case skill.Flips >= 4:
		score *= 3
	case skill.Flips >= 3:
		score += 0.2 * math.Max(0, half-2)
	case skill.Flips >= 2:
		score += 0.1 * math.Max(0, half-2)
	}
	return score
}

// PositionScore rewards piked and straight multi-flip skills.
func PositionScore(skill skilldef.SkillDefinition) float64 {
	if skill.Position == skilldef.Tuck {
		return 0
	}
	if skill.Flips == 1 && skill.TotalTwists() > 0 {
		return 0
	}
	return math.Floor(skill.Flips+epsilon) * 0.1
}

// epsilon absorbs binary representation error in quarter/half counts.
const epsilon = 1e-9

// Round2 rounds half-up to 2 decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
