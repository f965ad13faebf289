package requirement

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/skilldef"
)

func TestBuiltin(t *testing.T) {
	reg, err := Builtin(difficulty.NewScorer())
	require.NoError(t, err)

	ids := make([]string, 0, reg.Len())
	for _, q := range reg.All() {
		ids = append(ids, q.ID)
		assert.NotEmpty(t, q.Rules, "requirement %s has no rules", q.ID)
		assert.True(t, q.Tier.Valid(), "requirement %s has tier %q", q.ID, q.Tier)
	}
	assert.Equal(t, []string{"grade-1", "grade-2", "grade-3", "grade-4", "voluntary", "compulsory"}, ids)
	assert.Len(t, reg.ByCategory()["graded"], 4)
	assert.Len(t, reg.ByCategory()["competition"], 2)
}

func TestBuiltin_CompulsoryIsReachable(t *testing.T) {
	catalog, err := skilldef.Builtin()
	require.NoError(t, err)
	reg, err := Builtin(difficulty.NewScorer())
	require.NoError(t, err)
	q, err := reg.Get("compulsory")
	require.NoError(t, err)

	slots := q.RulesOf(KindSkillAtIndex)
	require.Len(t, slots, 10)

	r := make([]skilldef.SkillDefinition, len(slots))
	for _, rule := range slots {
		inst, err := catalog.Instance(rule.Params.Name, rule.Params.Position)
		require.NoError(t, err, "slot %d", rule.Params.Index)
		r[rule.Params.Index] = inst
	}

	for _, res := range q.Evaluate(r) {
		assert.True(t, res.Passed, "rule %s failed", res.RuleID)
	}
}

func TestParse_Rules(t *testing.T) {
	doc := `
requirements:
  - id: custom
    name: Custom
    category: club
    tier: advanced
    rules:
      - kind: min-skills
        count: 2
      - kind: min-difficulty
        value: 1
        system: womens
      - kind: includes-sequence
        names: [Barani, Rudolph]
        positions: [Free]
      - kind: or
        details: either twist
        any:
          - kind: min-twists
            value: 1.5
          - kind: include-position
            position: Pike
`
	reqs, err := Parse("test", []byte(doc), difficulty.NewScorer())
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	q := reqs[0]
	assert.Equal(t, TierAdvanced, q.Tier)
	require.Len(t, q.Rules, 4)
	assert.Equal(t, difficulty.Womens, q.Rules[1].Params.System)
	assert.Equal(t, []string{"Barani", "Rudolph"}, q.Rules[2].Params.Names)
	assert.Equal(t, "either twist", q.Rules[3].Details)
	assert.Len(t, q.Rules[3].Any, 2)

	assert.True(t, q.Satisfied(routine(barani, rudolph)))
	assert.False(t, q.Satisfied(routine(rudolph, barani)))
}

func TestParse_Errors(t *testing.T) {
	scorer := difficulty.NewScorer()
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"unknown field", "requirements:\n  - id: x\n    colour: red\n"},
		{"missing id", "requirements:\n  - name: x\n"},
		{"bad tier", "requirements:\n  - id: x\n    tier: legendary\n"},
		{"bad bed", "requirements:\n  - id: x\n    rules:\n      - kind: start-position\n        bed: Ceiling\n"},
		{"bad position", "requirements:\n  - id: x\n    rules:\n      - kind: include-position\n        position: Layout\n"},
		{"empty or", "requirements:\n  - id: x\n    rules:\n      - kind: or\n"},
		{"negative index", "requirements:\n  - id: x\n    rules:\n      - kind: skill-at-index\n        index: -1\n        name: Barani\n"},
		{"negative count", "requirements:\n  - id: x\n    rules:\n      - kind: exact-skills\n        count: -3\n"},
		{"negative count in or", "requirements:\n  - id: x\n    rules:\n      - kind: or\n        any:\n          - kind: max-non-somersaults\n            count: -1\n"},
		{"duplicate id", "requirements:\n  - id: x\n  - id: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", []byte(tt.doc), scorer)
			assert.Error(t, err)
		})
	}
}

func TestParse_UnknownKind(t *testing.T) {
	doc := "requirements:\n  - id: x\n    rules:\n      - kind: backflip-count\n"
	_, err := Parse("test", []byte(doc), difficulty.NewScorer())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRuleKind))
}

func TestLoadRegistry_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "club.yaml")
	doc := `
requirements:
  - id: grade-1
    name: Club Grade 1
    category: graded
    rules:
      - kind: exact-skills
        count: 8
  - id: club-open
    category: club
    rules:
      - kind: min-skills
        count: 1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	reg, err := LoadRegistry(nil, difficulty.NewScorer(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())

	g1, err := reg.Get("grade-1")
	require.NoError(t, err)
	assert.Equal(t, "Club Grade 1", g1.Name)
	assert.Equal(t, "grade-1", reg.All()[0].ID)

	open, err := reg.Get("club-open")
	require.NoError(t, err)
	assert.Equal(t, "club-open", open.Name)
	assert.Equal(t, TierBeginner, open.Tier)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(nil, difficulty.NewScorer(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
