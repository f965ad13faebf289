// Package routine models ordered skill sequences and checks that bed
// positions chain from one skill to the next.
package routine

import (
	"fmt"

	"github.com/abhisek/bounce/internal/skilldef"
)

// IsValid reports whether each skill starts where the previous one ended.
// Routines of length 0 or 1 are vacuously valid.
func IsValid(skills []skilldef.SkillDefinition) bool {
	for i := 1; i < len(skills); i++ {
		if skills[i-1].EndingPosition != skills[i].StartingPosition {
			return false
		}
	}
	return true
}

// ValidationErrors returns a human-readable message for every adjacent pair
// whose positions do not connect.
func ValidationErrors(skills []skilldef.SkillDefinition) []string {
	var errs []string
	for i := 1; i < len(skills); i++ {
		prev, cur := skills[i-1], skills[i]
		if prev.EndingPosition == cur.StartingPosition {
			continue
		}
		errs = append(errs, fmt.Sprintf(
			"skill %d %q ends in %s but skill %d %q starts from %s",
			i, prev.Name, prev.EndingPosition.DisplayName(),
			i+1, cur.Name, cur.StartingPosition.DisplayName(),
		))
	}
	return errs
}
