package routinegen

import (
	"slices"

	"github.com/abhisek/bounce/internal/requirement"
	"github.com/abhisek/bounce/internal/routine"
	"github.com/abhisek/bounce/internal/skilldef"
)

// Result is the outcome of GenerateCompliant. When Compliant is false the
// routine is the closest attempt found, not a valid answer to the requirement.
type Result struct {
	Routine   []skilldef.SkillDefinition
	Compliant bool
	Relaxed   bool
	Attempts  int
}

// upperBounds are the rule kinds that adding a skill can only break.
// They are enforced while building each candidate routine.
var upperBounds = []requirement.Kind{
	requirement.KindMaxSkills,
	requirement.KindMaxDifficulty,
	requirement.KindNoDuplicates,
	requirement.KindMaxElementDifficulty,
	requirement.KindMaxNonSomersaults,
	requirement.KindMaxElementsWithMinRotation,
}

// GenerateCompliant searches for a routine satisfying req, trying up to
// maxAttempts random routines. If none complies and req caps per-skill
// difficulty, a second pass builds routines without that cap so the closest
// attempt can still reach the required shape. A nil requirement defers to
// GenerateValid.
func (g *Generator) GenerateCompliant(pool []skilldef.SkillDefinition, req *requirement.Requirement, maxAttempts int) Result {
	if req == nil {
		return Result{
			Routine:   g.GenerateValid(pool, g.cfg.MaxLength),
			Compliant: true,
			Attempts:  1,
		}
	}
	if maxAttempts <= 0 {
		maxAttempts = g.cfg.MaxAttempts
	}
	if len(pool) == 0 {
		g.logger.Warn("routine generation skipped: empty skill pool", "requirement", req.ID)
		return Result{Compliant: req.Satisfied(nil)}
	}

	s := &search{
		g:         g,
		req:       *req,
		instances: expand(pool),
		length:    targetLength(*req, g.cfg.MaxLength),
		start:     startBed(*req),
		slots:     req.RulesOf(requirement.KindSkillAtIndex),
		bestScore: -1,
	}
	for _, slot := range s.slots {
		s.length = max(s.length, slot.Params.Index+1)
	}

	if res, ok := s.run(s.filters(true), maxAttempts); ok {
		return res
	}

	relaxed := false
	if req.Has(requirement.KindMaxElementDifficulty) {
		relaxed = true
		g.logger.Warn("relaxing per-skill difficulty cap",
			"requirement", req.ID, "attempts", s.attempts)
		if res, ok := s.run(s.filters(false), maxAttempts); ok {
			res.Relaxed = true
			return res
		}
	}

	failed := requirement.Failed(req.Evaluate(s.best))
	ids := make([]string, len(failed))
	for i, f := range failed {
		ids[i] = f.RuleID
	}
	g.logger.Warn("no compliant routine found",
		"requirement", req.ID, "attempts", s.attempts, "failed", ids)

	return Result{
		Routine:   s.best,
		Compliant: false,
		Relaxed:   relaxed,
		Attempts:  s.attempts,
	}
}

type search struct {
	g         *Generator
	req       requirement.Requirement
	instances []skilldef.SkillDefinition
	length    int
	start     skilldef.BedPosition
	slots     []requirement.Rule

	attempts  int
	best      []skilldef.SkillDefinition
	bestScore int
}

func (s *search) filters(strict bool) []requirement.Rule {
	var out []requirement.Rule
	for _, r := range s.req.Rules {
		if !slices.Contains(upperBounds, r.Kind) {
			continue
		}
		if !strict && r.Kind == requirement.KindMaxElementDifficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *search) run(filters []requirement.Rule, maxAttempts int) (Result, bool) {
	for range maxAttempts {
		s.attempts++
		var r []skilldef.SkillDefinition
		if len(s.slots) > 0 {
			r = s.fromTemplate(filters)
		} else {
			r = s.walk(filters)
		}

		if routine.IsValid(r) && s.req.Satisfied(r) {
			s.g.logger.Debug("compliant routine found",
				"requirement", s.req.ID, "attempts", s.attempts, "length", len(r))
			return Result{Routine: r, Compliant: true, Attempts: s.attempts}, true
		}
		s.keep(r)
	}
	return Result{}, false
}

// keep records r if it passes more rules than the best attempt so far.
func (s *search) keep(r []skilldef.SkillDefinition) {
	score := 0
	for _, res := range s.req.Evaluate(r) {
		if res.Passed {
			score++
		}
	}
	if !routine.IsValid(r) {
		score = 0
	}
	if score > s.bestScore || (score == s.bestScore && len(r) > len(s.best)) {
		s.best = r
		s.bestScore = score
	}
}

// walk chains random instances from the start bed up to the target length.
func (s *search) walk(filters []requirement.Rule) []skilldef.SkillDefinition {
	r := make([]skilldef.SkillDefinition, 0, max(s.length, 0))
	current := s.start
	for len(r) < s.length {
		cands := s.candidates(r, filters, func(c skilldef.SkillDefinition) bool {
			return c.StartingPosition == current
		})
		if len(cands) == 0 {
			break
		}
		pick := cands[s.g.rng.IntN(len(cands))]
		r = append(r, pick)
		current = pick.EndingPosition
	}
	return r
}

// fromTemplate pins every skill-at-index slot first, then fills the gaps
// so each filler chains from its left neighbour and, when possible, into
// its right neighbour.
func (s *search) fromTemplate(filters []requirement.Rule) []skilldef.SkillDefinition {
	r := make([]skilldef.SkillDefinition, max(s.length, 0))
	filled := make([]bool, len(r))

	for _, slot := range s.slots {
		p := slot.Params
		cands := s.candidates(nil, nil, func(c skilldef.SkillDefinition) bool {
			return c.Name == p.Name && c.Position.Matches(p.Position)
		})
		if len(cands) == 0 {
			s.g.logger.Debug("pinned skill not in pool", "index", p.Index, "skill", p.Name)
			continue
		}
		r[p.Index] = cands[s.g.rng.IntN(len(cands))]
		filled[p.Index] = true
	}

	for i := range r {
		if filled[i] {
			continue
		}
		from := s.start
		if i > 0 {
			from = r[i-1].EndingPosition
		}
		var into skilldef.BedPosition
		if i+1 < len(r) && filled[i+1] {
			into = r[i+1].StartingPosition
		}

		placed := placedSkills(r, filled)
		cands := s.candidates(placed, filters, func(c skilldef.SkillDefinition) bool {
			return c.StartingPosition == from && (into == "" || c.EndingPosition == into)
		})
		if len(cands) == 0 && into != "" {
			cands = s.candidates(placed, filters, func(c skilldef.SkillDefinition) bool {
				return c.StartingPosition == from
			})
		}
		if len(cands) == 0 {
			s.g.logger.Debug("template gap has no continuation", "index", i, "from", from)
			return r[:i]
		}
		r[i] = cands[s.g.rng.IntN(len(cands))]
		filled[i] = true
	}
	return r
}

// candidates returns the instances matching pred that keep every filter
// satisfied when appended to placed.
func (s *search) candidates(placed []skilldef.SkillDefinition, filters []requirement.Rule, pred func(skilldef.SkillDefinition) bool) []skilldef.SkillDefinition {
	var out []skilldef.SkillDefinition
	trial := append(slices.Clone(placed), skilldef.SkillDefinition{})
	for _, c := range s.instances {
		if !pred(c) {
			continue
		}
		trial[len(trial)-1] = c
		if allow(trial, filters) {
			out = append(out, c)
		}
	}
	return out
}

func allow(trial []skilldef.SkillDefinition, filters []requirement.Rule) bool {
	for _, f := range filters {
		if !f.Validate(trial) {
			return false
		}
	}
	return true
}

func placedSkills(r []skilldef.SkillDefinition, filled []bool) []skilldef.SkillDefinition {
	var out []skilldef.SkillDefinition
	for i, ok := range filled {
		if ok {
			out = append(out, r[i])
		}
	}
	return out
}

// expand turns pool definitions into positioned instances, keeping the
// first occurrence of each (name, position).
func expand(pool []skilldef.SkillDefinition) []skilldef.SkillDefinition {
	seen := make(map[skilldef.Key]bool)
	var out []skilldef.SkillDefinition
	for _, def := range pool {
		for _, inst := range def.Instances() {
			if seen[inst.Key()] {
				continue
			}
			seen[inst.Key()] = true
			out = append(out, inst)
		}
	}
	return out
}

func targetLength(q requirement.Requirement, fallback int) int {
	if exact := q.RulesOf(requirement.KindExactSkills); len(exact) > 0 {
		return exact[0].Params.Count
	}
	n := fallback
	for _, r := range q.RulesOf(requirement.KindMaxSkills) {
		n = min(n, r.Params.Count)
	}
	for _, r := range q.RulesOf(requirement.KindMinSkills) {
		n = max(n, r.Params.Count)
	}
	return n
}

func startBed(q requirement.Requirement) skilldef.BedPosition {
	if rs := q.RulesOf(requirement.KindStartPosition); len(rs) > 0 {
		return rs[0].Params.Bed
	}
	return skilldef.Standing
}
