package requirement

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/bounce/internal/skilldef"
)

var (
	// ErrRequirementNotFound is returned when a requirement ID is unknown.
	ErrRequirementNotFound = errors.New("requirement: not found")

	// ErrUnknownRuleKind is returned when a declared rule kind has no combinator.
	ErrUnknownRuleKind = errors.New("requirement: unknown rule kind")
)

// Tier is the level a requirement targets.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierElite        Tier = "elite"
)

// AllTiers returns all tiers from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBeginner, TierIntermediate, TierAdvanced, TierElite}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierIntermediate:
		return "Intermediate"
	case TierAdvanced:
		return "Advanced"
	case TierElite:
		return "Elite"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return slices.Contains(AllTiers(), t)
}

// Requirement is a named set of rules a routine must satisfy.
type Requirement struct {
	ID          string
	Name        string
	Category    string
	Description string
	Tier        Tier
	Rules       []Rule
}

// Evaluate checks every rule against the routine, in declaration order.
func (q Requirement) Evaluate(routine []skilldef.SkillDefinition) []Result {
	results := make([]Result, len(q.Rules))
	for i, r := range q.Rules {
		results[i] = r.Check(routine)
	}
	return results
}

// Satisfied reports whether every rule passes.
func (q Requirement) Satisfied(routine []skilldef.SkillDefinition) bool {
	for _, r := range q.Rules {
		if !r.Validate(routine) {
			return false
		}
	}
	return true
}

// RulesOf returns the top-level rules of the given kind.
func (q Requirement) RulesOf(kind Kind) []Rule {
	var out []Rule
	for _, r := range q.Rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Has reports whether the requirement declares a top-level rule of kind.
func (q Requirement) Has(kind Kind) bool {
	return len(q.RulesOf(kind)) > 0
}

// Failed filters results down to the rules that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Registry holds requirements by ID.
type Registry struct {
	byID  map[string]Requirement
	order []string
}

// NewRegistry builds a registry. A later requirement replaces an earlier
// one with the same ID but keeps its original position.
func NewRegistry(reqs ...Requirement) *Registry {
	r := &Registry{byID: make(map[string]Requirement, len(reqs))}
	for _, q := range reqs {
		r.add(q)
	}
	return r
}

func (r *Registry) add(q Requirement) {
	if _, ok := r.byID[q.ID]; !ok {
		r.order = append(r.order, q.ID)
	}
	r.byID[q.ID] = q
}

// Len returns the number of requirements.
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns the requirement with the given ID.
func (r *Registry) Get(id string) (Requirement, error) {
	q, ok := r.byID[id]
	if !ok {
		return Requirement{}, fmt.Errorf("%w: %q", ErrRequirementNotFound, id)
	}
	return q, nil
}

// All returns requirements in declaration order.
func (r *Registry) All() []Requirement {
	out := make([]Requirement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ByCategory groups requirements by category, in declaration order.
func (r *Registry) ByCategory() map[string][]Requirement {
	out := make(map[string][]Requirement)
	for _, q := range r.All() {
		out[q.Category] = append(out[q.Category], q)
	}
	return out
}

// Categories returns the sorted category names.
func (r *Registry) Categories() []string {
	groups := r.ByCategory()
	cats := make([]string, 0, len(groups))
	for c := range groups {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
