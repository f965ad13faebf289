package keyframe

import (
	"math"

	"github.com/abhisek/bounce/internal/skilldef"
)

// RenderProps are tunable presentation budgets, in turns of rotation.
type RenderProps struct {
	// StallRotation is rotated in the stall before the body takes shape.
	StallRotation float64 `json:"stallRotation" mapstructure:"stall_rotation"`
	// KickoutRotation is reserved at the end of the last flip to open out.
	KickoutRotation float64 `json:"kickoutRotation" mapstructure:"kickout_rotation"`
	// EnterRotation is spent moving into a new body shape.
	EnterRotation float64 `json:"enterRotation" mapstructure:"enter_rotation"`
}

// Default budgets.
const (
	DefaultStallRotation   = 0.15
	DefaultKickoutRotation = 0.2
	DefaultEnterRotation   = 0.1

	smallFlipRotation     = 0.05
	againstBedStall       = 0.25
	twistingStallRotation = 0.3
)

// RenderPropertiesFor derives default budgets from the shape of a skill.
func RenderPropertiesFor(def skilldef.SkillDefinition) RenderProps {
	if def.Flips < 0.75 {
		return RenderProps{
			StallRotation:   smallFlipRotation,
			KickoutRotation: smallFlipRotation,
			EnterRotation:   smallFlipRotation,
		}
	}

	p := RenderProps{
		StallRotation:   DefaultStallRotation,
		KickoutRotation: DefaultKickoutRotation,
		EnterRotation:   DefaultEnterRotation,
	}

	// Rotating away from the bed contact needs a longer stall: back skills
	// off the stomach (cody) and forward skills off the back (ball out).
	switch {
	case def.StartingPosition == skilldef.Stomach && def.IsBackSkill,
		def.StartingPosition == skilldef.Back && !def.IsBackSkill:
		p.StallRotation = againstBedStall
	}

	if def.TwistAt(0) > 0 {
		p.StallRotation = math.Max(p.StallRotation, twistingStallRotation)
	}
	return p
}

// Override returns p with every positive field of o applied on top.
func (p RenderProps) Override(o RenderProps) RenderProps {
	if o.StallRotation > 0 {
		p.StallRotation = o.StallRotation
	}
	if o.KickoutRotation > 0 {
		p.KickoutRotation = o.KickoutRotation
	}
	if o.EnterRotation > 0 {
		p.EnterRotation = o.EnterRotation
	}
	return p
}
