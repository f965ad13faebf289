package routine

import (
	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/skilldef"
)

// SkillLine is one row of a routine summary.
type SkillLine struct {
	Skill      skilldef.SkillDefinition
	Difficulty float64
}

// Summary aggregates a routine for display.
type Summary struct {
	Lines      []SkillLine
	Total      float64
	System     difficulty.System
	Valid      bool
	Violations []string
}

// Summarize scores every skill and the routine as a whole.
func Summarize(skills []skilldef.SkillDefinition, scorer *difficulty.Scorer, system difficulty.System) Summary {
	lines := make([]SkillLine, len(skills))
	for i, s := range skills {
		lines[i] = SkillLine{Skill: s, Difficulty: scorer.Score(s)}
	}
	return Summary{
		Lines:      lines,
		Total:      scorer.RoutineScore(skills, system),
		System:     system,
		Valid:      IsValid(skills),
		Violations: ValidationErrors(skills),
	}
}
