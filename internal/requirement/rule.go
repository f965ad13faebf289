// Package requirement provides composable routine rules and the named
// requirements (graded standards, competition rules) built from them.
package requirement

import (
	"fmt"
	"strings"

	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/skilldef"
)

// Scorer scores skills and routines for the difficulty rules.
type Scorer interface {
	Score(skill skilldef.SkillDefinition) float64
	RoutineScore(routine []skilldef.SkillDefinition, system difficulty.System) float64
}

// Kind identifies what a rule checks.
type Kind string

const (
	KindExactSkills                Kind = "exact-skills"
	KindMinSkills                  Kind = "min-skills"
	KindMaxSkills                  Kind = "max-skills"
	KindMinDifficulty              Kind = "min-difficulty"
	KindMaxDifficulty              Kind = "max-difficulty"
	KindMinFlips                   Kind = "min-flips"
	KindMinTwists                  Kind = "min-twists"
	KindStartPosition              Kind = "start-position"
	KindEndPosition                Kind = "end-position"
	KindIncludePosition            Kind = "include-position"
	KindIncludeSkill               Kind = "include-skill"
	KindIncludesSequence           Kind = "includes-sequence"
	KindSkillAtIndex               Kind = "skill-at-index"
	KindIncludeLanding             Kind = "include-landing"
	KindNoDuplicates               Kind = "no-duplicates"
	KindMaxElementDifficulty       Kind = "max-element-difficulty"
	KindMaxNonSomersaults          Kind = "max-non-somersaults"
	KindMinElementsWithMinRotation Kind = "min-elements-with-min-rotation"
	KindMaxElementsWithMinRotation Kind = "max-elements-with-min-rotation"
	KindMinElementFlipsAndTwists   Kind = "min-element-flips-and-twists"
	KindOr                         Kind = "or"
)

// Params holds a rule's typed parameters. Only the fields relevant to the
// rule's Kind are set.
type Params struct {
	Count     int
	Value     float64
	Twists    float64
	Index     int
	Name      string
	Position  skilldef.BodyPosition
	Bed       skilldef.BedPosition
	Names     []string
	Positions []skilldef.BodyPosition
	System    difficulty.System
}

// Rule is a pure predicate over a routine. ID is an opaque display key;
// parameters live in Params.
type Rule struct {
	ID          string
	Description string
	Details     string
	Kind        Kind
	Params      Params
	Any         []Rule

	validate func([]skilldef.SkillDefinition) bool
}

// Validate reports whether the routine satisfies the rule.
func (r Rule) Validate(routine []skilldef.SkillDefinition) bool {
	if r.validate == nil {
		return false
	}
	return r.validate(routine)
}

// Result is the outcome of checking one rule.
type Result struct {
	RuleID      string `json:"ruleId"`
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
	Details     string `json:"details,omitempty"`
}

// Check validates the routine and packages the outcome for display.
func (r Rule) Check(routine []skilldef.SkillDefinition) Result {
	return Result{
		RuleID:      r.ID,
		Description: r.Description,
		Passed:      r.Validate(routine),
		Details:     r.Details,
	}
}

// WithDetails returns a copy of r carrying extra display text.
func (r Rule) WithDetails(details string) Rule {
	r.Details = details
	return r
}

func newRule(kind Kind, id, desc string, p Params, fn func([]skilldef.SkillDefinition) bool) Rule {
	return Rule{ID: id, Description: desc, Kind: kind, Params: p, validate: fn}
}

func count(routine []skilldef.SkillDefinition, pred func(skilldef.SkillDefinition) bool) int {
	n := 0
	for _, s := range routine {
		if pred(s) {
			n++
		}
	}
	return n
}

func some(routine []skilldef.SkillDefinition, pred func(skilldef.SkillDefinition) bool) bool {
	return count(routine, pred) > 0
}

func formatPosition(p skilldef.BodyPosition) string {
	if p == "" || p == skilldef.AnyPosition {
		return "any position"
	}
	return strings.ToLower(string(p))
}

// ExactSkills requires exactly n skills.
func ExactSkills(n int) Rule {
	return newRule(KindExactSkills, fmt.Sprintf("exact-skills-%d", n), fmt.Sprintf("Exactly %d skills", n),
		Params{Count: n},
		func(r []skilldef.SkillDefinition) bool { return len(r) == n })
}

// MinSkills requires at least n skills.
func MinSkills(n int) Rule {
	return newRule(KindMinSkills, fmt.Sprintf("min-skills-%d", n), fmt.Sprintf("At least %d skills", n),
		Params{Count: n},
		func(r []skilldef.SkillDefinition) bool { return len(r) >= n })
}

// MaxSkills allows at most n skills.
func MaxSkills(n int) Rule {
	return newRule(KindMaxSkills, fmt.Sprintf("max-skills-%d", n), fmt.Sprintf("At most %d skills", n),
		Params{Count: n},
		func(r []skilldef.SkillDefinition) bool { return len(r) <= n })
}

// MinDifficulty requires a total men's-scored difficulty of at least min.
func MinDifficulty(s Scorer, min float64) Rule {
	return MinDifficultyFor(s, min, difficulty.Mens)
}

// MinDifficultyFor is MinDifficulty under an explicit scoring system.
func MinDifficultyFor(s Scorer, min float64, system difficulty.System) Rule {
	return newRule(KindMinDifficulty, fmt.Sprintf("min-difficulty-%g", min), fmt.Sprintf("Total difficulty of at least %.1f", min),
		Params{Value: min, System: system},
		func(r []skilldef.SkillDefinition) bool {
			return len(r) > 0 && s.RoutineScore(r, system) >= min
		})
}

// MaxDifficulty caps the total men's-scored difficulty at max.
func MaxDifficulty(s Scorer, max float64) Rule {
	return MaxDifficultyFor(s, max, difficulty.Mens)
}

// MaxDifficultyFor is MaxDifficulty under an explicit scoring system.
func MaxDifficultyFor(s Scorer, max float64, system difficulty.System) Rule {
	return newRule(KindMaxDifficulty, fmt.Sprintf("max-difficulty-%g", max), fmt.Sprintf("Total difficulty of at most %.1f", max),
		Params{Value: max, System: system},
		func(r []skilldef.SkillDefinition) bool { return s.RoutineScore(r, system) <= max })
}

// MinFlips requires at least one skill with flips >= n.
func MinFlips(n float64) Rule {
	return newRule(KindMinFlips, fmt.Sprintf("min-flips-%g", n), fmt.Sprintf("A skill with at least %g flips", n),
		Params{Value: n},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.Flips >= n })
		})
}

// MinTwists requires at least one skill with a single twist slot >= n.
func MinTwists(n float64) Rule {
	return newRule(KindMinTwists, fmt.Sprintf("min-twists-%g", n), fmt.Sprintf("A skill with at least %g twists in one flip", n),
		Params{Value: n},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.MaxTwist() >= n })
		})
}

// StartPosition requires the first skill to start from bed.
func StartPosition(bed skilldef.BedPosition) Rule {
	return newRule(KindStartPosition, fmt.Sprintf("start-position-%s", bed), fmt.Sprintf("Start from %s", bed.DisplayName()),
		Params{Bed: bed},
		func(r []skilldef.SkillDefinition) bool {
			return len(r) > 0 && r[0].StartingPosition == bed
		})
}

// EndPosition requires the last skill to land in bed.
func EndPosition(bed skilldef.BedPosition) Rule {
	return newRule(KindEndPosition, fmt.Sprintf("end-position-%s", bed), fmt.Sprintf("Finish in %s", bed.DisplayName()),
		Params{Bed: bed},
		func(r []skilldef.SkillDefinition) bool {
			return len(r) > 0 && r[len(r)-1].EndingPosition == bed
		})
}

// IncludePosition requires at least one skill performed in p.
func IncludePosition(p skilldef.BodyPosition) Rule {
	return newRule(KindIncludePosition, fmt.Sprintf("include-position-%s", p), fmt.Sprintf("A skill in %s position", formatPosition(p)),
		Params{Position: p},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.Position.Matches(p) })
		})
}

// IncludeSkill requires the named skill, in position p when given.
// AnyPosition ("Free") or an empty position accepts every position.
func IncludeSkill(name string, p skilldef.BodyPosition) Rule {
	id := fmt.Sprintf("include-skill-%s", name)
	desc := fmt.Sprintf("Include %s", name)
	if p != "" && p != skilldef.AnyPosition {
		id += "-" + string(p)
		desc += fmt.Sprintf(" (%s)", formatPosition(p))
	}
	return newRule(KindIncludeSkill, id, desc,
		Params{Name: name, Position: p},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.Name == name && s.Position.Matches(p) })
		})
}

// IncludesSequence requires names to appear consecutively, each in the
// matching entry of positions. Missing or "Free" positions match anything.
func IncludesSequence(names []string, positions []skilldef.BodyPosition) Rule {
	names = append([]string(nil), names...)
	positions = append([]skilldef.BodyPosition(nil), positions...)
	return newRule(KindIncludesSequence, "includes-sequence-"+strings.Join(names, "-"), "Sequence: "+strings.Join(names, " → "),
		Params{Names: names, Positions: positions},
		func(r []skilldef.SkillDefinition) bool {
			if len(names) == 0 {
				return true
			}
			for start := 0; start+len(names) <= len(r); start++ {
				if sequenceAt(r, start, names, positions) {
					return true
				}
			}
			return false
		})
}

func sequenceAt(r []skilldef.SkillDefinition, start int, names []string, positions []skilldef.BodyPosition) bool {
	for i, name := range names {
		s := r[start+i]
		if s.Name != name {
			return false
		}
		if i < len(positions) && !s.Position.Matches(positions[i]) {
			return false
		}
	}
	return true
}

// SkillAtIndex requires the named skill at zero-based index i.
func SkillAtIndex(i int, name string, p skilldef.BodyPosition) Rule {
	return newRule(KindSkillAtIndex, fmt.Sprintf("skill-at-index-%d", i), fmt.Sprintf("Skill %d: %s (%s)", i+1, name, formatPosition(p)),
		Params{Index: i, Name: name, Position: p},
		func(r []skilldef.SkillDefinition) bool {
			return i >= 0 && i < len(r) && r[i].Name == name && r[i].Position.Matches(p)
		})
}

// IncludeLanding requires at least one skill landing in bed.
func IncludeLanding(bed skilldef.BedPosition) Rule {
	return newRule(KindIncludeLanding, fmt.Sprintf("include-landing-%s", bed), fmt.Sprintf("A landing in %s", bed.DisplayName()),
		Params{Bed: bed},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.EndingPosition == bed })
		})
}

// NoDuplicates forbids repeating a (name, position) pair.
func NoDuplicates() Rule {
	return newRule(KindNoDuplicates, "no-duplicates", "No repeated skills",
		Params{},
		func(r []skilldef.SkillDefinition) bool {
			seen := make(map[skilldef.Key]bool, len(r))
			for _, s := range r {
				if seen[s.Key()] {
					return false
				}
				seen[s.Key()] = true
			}
			return true
		})
}

// MaxElementDifficulty caps every individual skill's difficulty.
func MaxElementDifficulty(s Scorer, max float64) Rule {
	return newRule(KindMaxElementDifficulty, fmt.Sprintf("max-element-difficulty-%g", max), fmt.Sprintf("No skill above %.1f difficulty", max),
		Params{Value: max},
		func(r []skilldef.SkillDefinition) bool {
			return !some(r, func(sk skilldef.SkillDefinition) bool { return s.Score(sk) > max })
		})
}

// MaxNonSomersaults allows at most n skills without a whole somersault.
func MaxNonSomersaults(n int) Rule {
	return newRule(KindMaxNonSomersaults, fmt.Sprintf("max-non-somersaults-%d", n), fmt.Sprintf("At most %d non-somersault skills", n),
		Params{Count: n},
		func(r []skilldef.SkillDefinition) bool {
			return count(r, func(s skilldef.SkillDefinition) bool { return s.EffectiveFlips() == 0 }) <= n
		})
}

// MinElementsWithMinRotation requires at least n skills with flips >= flips.
func MinElementsWithMinRotation(n int, flips float64) Rule {
	return newRule(KindMinElementsWithMinRotation, fmt.Sprintf("min-elements-%d-with-rotation-%g", n, flips),
		fmt.Sprintf("At least %d skills with %g or more flips", n, flips),
		Params{Count: n, Value: flips},
		func(r []skilldef.SkillDefinition) bool {
			return count(r, func(s skilldef.SkillDefinition) bool { return s.Flips >= flips }) >= n
		})
}

// MaxElementsWithMinRotation allows at most n skills with flips >= flips.
func MaxElementsWithMinRotation(n int, flips float64) Rule {
	return newRule(KindMaxElementsWithMinRotation, fmt.Sprintf("max-elements-%d-with-rotation-%g", n, flips),
		fmt.Sprintf("At most %d skills with %g or more flips", n, flips),
		Params{Count: n, Value: flips},
		func(r []skilldef.SkillDefinition) bool {
			return count(r, func(s skilldef.SkillDefinition) bool { return s.Flips >= flips }) <= n
		})
}

// MinElementFlipsAndTwists requires one skill with at least flips flips
// and at least twists total twists.
func MinElementFlipsAndTwists(flips, twists float64) Rule {
	return newRule(KindMinElementFlipsAndTwists, fmt.Sprintf("min-element-flips-%g-twists-%g", flips, twists),
		fmt.Sprintf("A skill with %g+ flips and %g+ twists", flips, twists),
		Params{Value: flips, Twists: twists},
		func(r []skilldef.SkillDefinition) bool {
			return some(r, func(s skilldef.SkillDefinition) bool { return s.Flips >= flips && s.TotalTwists() >= twists })
		})
}

// Or passes when any of rules passes.
func Or(rules ...Rule) Rule {
	rules = append([]Rule(nil), rules...)
	ids := make([]string, len(rules))
	descs := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
		descs[i] = r.Description
	}
	rule := newRule(KindOr, "or("+strings.Join(ids, "|")+")", strings.Join(descs, " OR "),
		Params{},
		func(r []skilldef.SkillDefinition) bool {
			for _, sub := range rules {
				if sub.Validate(r) {
					return true
				}
			}
			return false
		})
	rule.Any = rules
	return rule
}
