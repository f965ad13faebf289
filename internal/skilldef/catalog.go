package skilldef

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrSkillNotFound is returned when a lookup names an unknown skill.
var ErrSkillNotFound = errors.New("skilldef: skill not found")

// Catalog holds a set of skill definitions with precomputed indices.
type Catalog struct {
	skills     []SkillDefinition
	byName     map[string]int
	byStart    map[BedPosition][]SkillDefinition
	instances  []SkillDefinition
	byInstance map[Key]int
}

// NewCatalog builds a catalog from the given definitions. Later definitions
// with the same name replace earlier ones, so sources can be layered.
func NewCatalog(defs ...[]SkillDefinition) *Catalog {
	c := &Catalog{
		byName:     make(map[string]int),
		byStart:    make(map[BedPosition][]SkillDefinition),
		byInstance: make(map[Key]int),
	}

	for _, src := range defs {
		for _, d := range src {
			if i, ok := c.byName[d.Name]; ok {
				c.skills[i] = d.Clone()
				continue
			}
			c.byName[d.Name] = len(c.skills)
			c.skills = append(c.skills, d.Clone())
		}
	}

	// Group by starting position, sorted by name for deterministic ordering
	for _, s := range c.skills {
		c.byStart[s.StartingPosition] = append(c.byStart[s.StartingPosition], s)
	}
	for bed := range c.byStart {
		group := c.byStart[bed]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
	}

	// Expand to (name, position) instances, dropping duplicates
	for _, s := range c.skills {
		for _, inst := range s.Instances() {
			if _, dup := c.byInstance[inst.Key()]; dup {
				continue
			}
			c.byInstance[inst.Key()] = len(c.instances)
			c.instances = append(c.instances, inst)
		}
	}

	return c
}

// Len returns the number of distinct skill names.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// All returns all definitions in load order.
func (c *Catalog) All() []SkillDefinition {
	return cloneAll(c.skills)
}

// Get returns a definition by name.
func (c *Catalog) Get(name string) (SkillDefinition, error) {
	i, ok := c.byName[name]
	if !ok {
		return SkillDefinition{}, fmt.Errorf("%w: %q", ErrSkillNotFound, name)
	}
	return c.skills[i].Clone(), nil
}

// Instance returns the named skill resolved to position p. When p is empty
// the definition's own position is used.
func (c *Catalog) Instance(name string, p BodyPosition) (SkillDefinition, error) {
	s, err := c.Get(name)
	if err != nil {
		return SkillDefinition{}, err
	}
	if p == "" {
		return s, nil
	}
	if !s.CanBePerformedIn(p) {
		return SkillDefinition{}, fmt.Errorf("%w: %q in %s", ErrSkillNotFound, name, p)
	}
	return s.WithPosition(p), nil
}

// Instances returns every (name, position) instance, deduplicated.
func (c *Catalog) Instances() []SkillDefinition {
	return cloneAll(c.instances)
}

// ByStartingPosition returns skills starting from bed, ordered by name.
func (c *Catalog) ByStartingPosition(bed BedPosition) []SkillDefinition {
	return cloneAll(c.byStart[bed])
}

// Names returns all skill names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.skills))
	for _, s := range c.skills {
		names = append(names, s.Name)
	}
	slices.Sort(names)
	return names
}

// Validate checks the catalog for structural issues.
func (c *Catalog) Validate() error {
	return validateSkills(c.skills)
}

func cloneAll(skills []SkillDefinition) []SkillDefinition {
	out := make([]SkillDefinition, len(skills))
	for i, s := range skills {
		out[i] = s.Clone()
	}
	return out
}
