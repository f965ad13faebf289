package skilldef

import (
	"fmt"
	"slices"
)

// BedPosition is the athlete's orientation on the bed before or after a skill.
type BedPosition string

const (
	Standing      BedPosition = "Standing"
	Back          BedPosition = "Back"
	Stomach       BedPosition = "Stomach"
	Seated        BedPosition = "Seated"
	HandsAndKnees BedPosition = "HandsAndKnees"
)

// AllBedPositions returns all bed positions in display order.
func AllBedPositions() []BedPosition {
	return []BedPosition{Standing, Back, Stomach, Seated, HandsAndKnees}
}

// Valid reports whether b is one of the known bed positions.
func (b BedPosition) Valid() bool {
	return slices.Contains(AllBedPositions(), b)
}

// DisplayName returns a human-readable label for the bed position.
func (b BedPosition) DisplayName() string {
	switch b {
	case HandsAndKnees:
		return "Hands & Knees"
	default:
		return string(b)
	}
}

// RotationOffset is the somersault rotation, in turns, already "used up" by
// landing in or taking off from this bed position.
func (b BedPosition) RotationOffset() float64 {
	switch b {
	case Back:
		return -0.25
	case Stomach, HandsAndKnees:
		return 0.25
	default:
		return 0
	}
}

// BodyPosition is the in-air body shape held during rotation.
type BodyPosition string

const (
	Straight BodyPosition = "Straight"
	Tuck     BodyPosition = "Tuck"
	Pike     BodyPosition = "Pike"

	// AnyPosition matches every body position in requirement rules.
	AnyPosition BodyPosition = "Free"
)

// AllBodyPositions returns the concrete body positions in display order.
func AllBodyPositions() []BodyPosition {
	return []BodyPosition{Tuck, Pike, Straight}
}

// Valid reports whether p is a concrete body position.
func (p BodyPosition) Valid() bool {
	return slices.Contains(AllBodyPositions(), p)
}

// Matches reports whether p satisfies the wanted position. AnyPosition
// (and the empty position) match everything.
func (p BodyPosition) Matches(want BodyPosition) bool {
	return want == "" || want == AnyPosition || p == want
}

// SkillDefinition is the declarative description of a trampoline skill.
// Values are immutable once loaded; use WithPosition to derive instances.
type SkillDefinition struct {
	Name              string         `json:"name"`
	StartingPosition  BedPosition    `json:"startingPosition"`
	EndingPosition    BedPosition    `json:"endingPosition"`
	Flips             float64        `json:"flips"`
	Twists            []float64      `json:"twists"`
	Position          BodyPosition   `json:"position"`
	PossiblePositions []BodyPosition `json:"possiblePositions,omitempty"`
	IsBackSkill       bool           `json:"isBackSkill"`
}

// Key identifies "the same skill" throughout the system.
type Key struct {
	Name     string
	Position BodyPosition
}

func (k Key) String() string {
	return fmt.Sprintf("%s (%s)", k.Name, k.Position)
}

// Key returns the (name, position) identity of the skill.
func (s SkillDefinition) Key() Key {
	return Key{Name: s.Name, Position: s.Position}
}

// TotalTwists returns the sum of all twist slots.
func (s SkillDefinition) TotalTwists() float64 {
	var total float64
	for _, t := range s.Twists {
		total += t
	}
	return total
}

// MaxTwist returns the largest single twist slot.
func (s SkillDefinition) MaxTwist() float64 {
	if len(s.Twists) == 0 {
		return 0
	}
	return slices.Max(s.Twists)
}

// TwistAt returns the twist slot at i, or 0 when the slot is absent.
func (s SkillDefinition) TwistAt(i int) float64 {
	if i < 0 || i >= len(s.Twists) {
		return 0
	}
	return s.Twists[i]
}

// EffectiveFlips is the somersault count once the rotation contributed by
// the starting bed position is discounted, rounded to a whole flip.
func (s SkillDefinition) EffectiveFlips() int {
	offset := s.StartingPosition.RotationOffset()
	if offset < 0 {
		offset = -offset
	}
	eff := s.Flips - offset
	if eff < 0 {
		eff = 0
	}
	return int(eff + 0.5)
}

// Positions returns the body positions this skill can be performed in.
// Skills without alternatives can only be performed in their own position.
func (s SkillDefinition) Positions() []BodyPosition {
	if len(s.PossiblePositions) == 0 {
		return []BodyPosition{s.Position}
	}
	return slices.Clone(s.PossiblePositions)
}

// CanBePerformedIn reports whether p is one of the skill's positions.
func (s SkillDefinition) CanBePerformedIn(p BodyPosition) bool {
	return slices.Contains(s.Positions(), p)
}

// WithPosition returns a copy of the skill resolved to position p.
// It panics if p is not one of the skill's possible positions.
func (s SkillDefinition) WithPosition(p BodyPosition) SkillDefinition {
	if !s.CanBePerformedIn(p) {
		panic(fmt.Sprintf("skilldef: %q cannot be performed in %s", s.Name, p))
	}
	out := s.Clone()
	out.Position = p
	return out
}

// Clone returns a deep copy of the skill.
func (s SkillDefinition) Clone() SkillDefinition {
	out := s
	out.Twists = slices.Clone(s.Twists)
	out.PossiblePositions = slices.Clone(s.PossiblePositions)
	return out
}

// Instances expands the skill into one definition per possible position.
func (s SkillDefinition) Instances() []SkillDefinition {
	positions := s.Positions()
	out := make([]SkillDefinition, 0, len(positions))
	for _, p := range positions {
		out = append(out, s.WithPosition(p))
	}
	return out
}

func (s SkillDefinition) String() string {
	return s.Key().String()
}
