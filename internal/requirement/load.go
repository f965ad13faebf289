package requirement

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/skilldef"
)

//go:embed data/requirements.yaml
var builtinRequirements []byte

// BuiltinSource names the embedded requirement tables in errors and logs.
const BuiltinSource = "builtin"

type document struct {
	Requirements []requirementDecl `yaml:"requirements"`
}

type requirementDecl struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Category    string     `yaml:"category"`
	Tier        string     `yaml:"tier"`
	Description string     `yaml:"description"`
	Rules       []ruleDecl `yaml:"rules"`
}

type ruleDecl struct {
	Kind      string     `yaml:"kind"`
	Count     int        `yaml:"count"`
	Value     float64    `yaml:"value"`
	Name      string     `yaml:"name"`
	Position  string     `yaml:"position"`
	Names     []string   `yaml:"names"`
	Positions []string   `yaml:"positions"`
	Index     int        `yaml:"index"`
	Bed       string     `yaml:"bed"`
	Flips     float64    `yaml:"flips"`
	Twists    float64    `yaml:"twists"`
	System    string     `yaml:"system"`
	Details   string     `yaml:"details"`
	Any       []ruleDecl `yaml:"any"`
}

// Parse decodes a YAML requirement document and compiles its rules.
// Unknown fields are rejected.
func Parse(source string, data []byte, scorer Scorer) ([]Requirement, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("requirements %s: empty document", source)
		}
		return nil, fmt.Errorf("requirements %s: decode: %w", source, err)
	}

	var errs []string
	seen := make(map[string]bool)
	reqs := make([]Requirement, 0, len(doc.Requirements))
	for i, decl := range doc.Requirements {
		q, err := decl.compile(scorer)
		if err != nil {
			errs = append(errs, fmt.Sprintf("requirement %d (%q): %v", i, decl.ID, err))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("requirement %d: duplicate id %q", i, q.ID))
			continue
		}
		seen[q.ID] = true
		reqs = append(reqs, q)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("requirements %s: validation failed:\n  %s", source, strings.Join(errs, "\n  "))
	}
	return reqs, nil
}

// ParseFile reads and parses a YAML requirement file.
func ParseFile(path string, scorer Scorer) ([]Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}
	return Parse(path, data, scorer)
}

// Builtin returns a registry over the embedded requirement tables.
func Builtin(scorer Scorer) (*Registry, error) {
	reqs, err := Parse(BuiltinSource, builtinRequirements, scorer)
	if err != nil {
		return nil, err
	}
	return NewRegistry(reqs...), nil
}

// LoadRegistry merges the built-in tables with the given files. A file
// requirement replaces a built-in one with the same ID.
func LoadRegistry(logger *slog.Logger, scorer Scorer, paths ...string) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg, err := Builtin(scorer)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		reqs, err := ParseFile(path, scorer)
		if err != nil {
			return nil, err
		}
		for _, q := range reqs {
			reg.add(q)
		}
		logger.Debug("requirements loaded", "source", path, "count", len(reqs))
	}
	logger.Info("requirement registry ready", "requirements", reg.Len(), "sources", len(paths)+1)
	return reg, nil
}

func (s requirementDecl) compile(scorer Scorer) (Requirement, error) {
	if s.ID == "" {
		return Requirement{}, errors.New("missing id")
	}
	tier := Tier(s.Tier)
	if tier == "" {
		tier = TierBeginner
	}
	if !tier.Valid() {
		return Requirement{}, fmt.Errorf("unknown tier %q", s.Tier)
	}
	name := s.Name
	if name == "" {
		name = s.ID
	}
	rules := make([]Rule, 0, len(s.Rules))
	for i, rs := range s.Rules {
		r, err := rs.compile(scorer)
		if err != nil {
			return Requirement{}, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return Requirement{
		ID:          s.ID,
		Name:        name,
		Category:    s.Category,
		Description: s.Description,
		Tier:        tier,
		Rules:       rules,
	}, nil
}

func (s ruleDecl) compile(scorer Scorer) (Rule, error) {
	r, err := s.build(scorer)
	if err != nil {
		return Rule{}, err
	}
	if s.Details != "" {
		r = r.WithDetails(s.Details)
	}
	return r, nil
}

func (s ruleDecl) build(scorer Scorer) (Rule, error) {
	if s.Count < 0 {
		return Rule{}, fmt.Errorf("%s: negative count %d", s.Kind, s.Count)
	}
	switch Kind(s.Kind) {
	case KindExactSkills:
		return ExactSkills(s.Count), nil
	case KindMinSkills:
		return MinSkills(s.Count), nil
	case KindMaxSkills:
		return MaxSkills(s.Count), nil
	case KindMinDifficulty, KindMaxDifficulty:
		system, err := parseSystem(s.System)
		if err != nil {
			return Rule{}, err
		}
		if Kind(s.Kind) == KindMinDifficulty {
			return MinDifficultyFor(scorer, s.Value, system), nil
		}
		return MaxDifficultyFor(scorer, s.Value, system), nil
	case KindMinFlips:
		return MinFlips(s.Value), nil
	case KindMinTwists:
		return MinTwists(s.Value), nil
	case KindStartPosition, KindEndPosition, KindIncludeLanding:
		bed := skilldef.BedPosition(s.Bed)
		if !bed.Valid() {
			return Rule{}, fmt.Errorf("%s: unknown bed position %q", s.Kind, s.Bed)
		}
		switch Kind(s.Kind) {
		case KindStartPosition:
			return StartPosition(bed), nil
		case KindEndPosition:
			return EndPosition(bed), nil
		}
		return IncludeLanding(bed), nil
	case KindIncludePosition:
		p, err := parsePosition(s.Position)
		if err != nil {
			return Rule{}, err
		}
		return IncludePosition(p), nil
	case KindIncludeSkill:
		if s.Name == "" {
			return Rule{}, errors.New("include-skill: missing name")
		}
		p, err := parsePosition(s.Position)
		if err != nil {
			return Rule{}, err
		}
		return IncludeSkill(s.Name, p), nil
	case KindIncludesSequence:
		if len(s.Names) == 0 {
			return Rule{}, errors.New("includes-sequence: missing names")
		}
		positions := make([]skilldef.BodyPosition, len(s.Positions))
		for i, raw := range s.Positions {
			p, err := parsePosition(raw)
			if err != nil {
				return Rule{}, err
			}
			positions[i] = p
		}
		return IncludesSequence(s.Names, positions), nil
	case KindSkillAtIndex:
		if s.Name == "" {
			return Rule{}, errors.New("skill-at-index: missing name")
		}
		if s.Index < 0 {
			return Rule{}, fmt.Errorf("skill-at-index: negative index %d", s.Index)
		}
		p, err := parsePosition(s.Position)
		if err != nil {
			return Rule{}, err
		}
		return SkillAtIndex(s.Index, s.Name, p), nil
	case KindNoDuplicates:
		return NoDuplicates(), nil
	case KindMaxElementDifficulty:
		return MaxElementDifficulty(scorer, s.Value), nil
	case KindMaxNonSomersaults:
		return MaxNonSomersaults(s.Count), nil
	case KindMinElementsWithMinRotation:
		return MinElementsWithMinRotation(s.Count, s.Flips), nil
	case KindMaxElementsWithMinRotation:
		return MaxElementsWithMinRotation(s.Count, s.Flips), nil
	case KindMinElementFlipsAndTwists:
		return MinElementFlipsAndTwists(s.Flips, s.Twists), nil
	case KindOr:
		if len(s.Any) == 0 {
			return Rule{}, errors.New("or: no alternatives")
		}
		alts := make([]Rule, len(s.Any))
		for i, sub := range s.Any {
			r, err := sub.compile(scorer)
			if err != nil {
				return Rule{}, fmt.Errorf("or[%d]: %w", i, err)
			}
			alts[i] = r
		}
		return Or(alts...), nil
	default:
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleKind, s.Kind)
	}
}

func parsePosition(raw string) (skilldef.BodyPosition, error) {
	p := skilldef.BodyPosition(raw)
	if raw == "" || p == skilldef.AnyPosition || p.Valid() {
		return p, nil
	}
	return "", fmt.Errorf("unknown body position %q", raw)
}

func parseSystem(raw string) (difficulty.System, error) {
	switch difficulty.System(raw) {
	case "", difficulty.Mens:
		return difficulty.Mens, nil
	case difficulty.Womens:
		return difficulty.Womens, nil
	}
	return "", fmt.Errorf("unknown scoring system %q", raw)
}
