package skilldef

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on the given definitions.
func Validate(defs []SkillDefinition) error {
	return validateSkills(defs)
}

// validateSkills performs all structural checks on the given skill set.
// Returns a combined error describing all problems found, or nil if valid.
func validateSkills(skills []SkillDefinition) error {
	var errs []string

	nameSet := make(map[string]bool, len(skills))

	// Check for duplicate and empty names
	for i, s := range skills {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("skill #%d has an empty name", i))
			continue
		}
		if nameSet[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate skill name: %q", s.Name))
		}
		nameSet[s.Name] = true
	}

	for _, s := range skills {
		if !s.StartingPosition.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q: unknown starting position %q", s.Name, s.StartingPosition))
		}
		if !s.EndingPosition.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q: unknown ending position %q", s.Name, s.EndingPosition))
		}
		if s.Flips < 0 {
			errs = append(errs, fmt.Sprintf("skill %q: flips must be >= 0, got %g", s.Name, s.Flips))
		}
		for j, t := range s.Twists {
			if t < 0 {
				errs = append(errs, fmt.Sprintf("skill %q: twist slot %d must be >= 0, got %g", s.Name, j, t))
			}
		}
		if !s.Position.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q: unknown body position %q", s.Name, s.Position))
		}
		for _, p := range s.PossiblePositions {
			if !p.Valid() {
				errs = append(errs, fmt.Sprintf("skill %q: unknown possible position %q", s.Name, p))
			}
		}
		if len(s.PossiblePositions) > 0 && !s.CanBePerformedIn(s.Position) {
			errs = append(errs, fmt.Sprintf("skill %q: position %s is not among possible positions %v", s.Name, s.Position, s.PossiblePositions))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
