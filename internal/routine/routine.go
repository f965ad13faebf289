package routine

import (
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/bounce/internal/skilldef"
)

// Routine is an ordered sequence of skills with resolved body positions.
// Validity is derived on read and never stored.
type Routine struct {
	ID     string                     `json:"id"`
	Skills []skilldef.SkillDefinition `json:"skills"`
}

// New creates a routine with a fresh ID.
func New(skills ...skilldef.SkillDefinition) *Routine {
	return &Routine{ID: uuid.NewString(), Skills: slices.Clone(skills)}
}

// Len returns the number of skills.
func (r *Routine) Len() int {
	return len(r.Skills)
}

// Append adds skills to the end of the routine.
func (r *Routine) Append(skills ...skilldef.SkillDefinition) {
	r.Skills = append(r.Skills, skills...)
}

// Remove deletes the skill at index i. Out-of-range indices are ignored.
func (r *Routine) Remove(i int) {
	if i < 0 || i >= len(r.Skills) {
		return
	}
	r.Skills = slices.Delete(r.Skills, i, i+1)
}

// Move relocates the skill at index from to index to.
func (r *Routine) Move(from, to int) {
	n := len(r.Skills)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	s := r.Skills[from]
	r.Skills = slices.Delete(r.Skills, from, from+1)
	r.Skills = slices.Insert(r.Skills, to, s)
}

// Valid reports whether bed positions chain across the routine.
func (r *Routine) Valid() bool {
	return IsValid(r.Skills)
}

// Errors returns one message per broken adjacency.
func (r *Routine) Errors() []string {
	return ValidationErrors(r.Skills)
}
