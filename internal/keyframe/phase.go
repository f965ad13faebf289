package keyframe

import (
	"math"

	"github.com/abhisek/bounce/internal/skilldef"
)

// PhaseKind names a segment of a rotating skill.
type PhaseKind int

const (
	PhaseTakeoff PhaseKind = iota
	PhaseStall
	PhaseEnter
	PhaseHold
	PhaseFinal
	PhaseKickout
	PhaseLanding
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseTakeoff:
		return "takeoff"
	case PhaseStall:
		return "stall"
	case PhaseEnter:
		return "enter"
	case PhaseHold:
		return "hold"
	case PhaseFinal:
		return "final"
	case PhaseKickout:
		return "kickout"
	case PhaseLanding:
		return "landing"
	default:
		return "unknown"
	}
}

// phase describes where a segment ends. Targets are absolute so the fold
// never accumulates rounding error into the landing frame.
type phase struct {
	Kind    PhaseKind
	To      float64 // unsigned rotation progress at the end of the phase
	TwistTo float64 // cumulative twist at the end of the phase
	Shape   shape
	Joints  Joints
}

// phaseState is threaded through the fold over phases.
type phaseState struct {
	Progress float64
	Twist    float64
	Elapsed  float64
}

// step advances the state through ph. Elapsed time grows by the rotation
// covered divided by the angular speed of the phase's shape.
func step(st phaseState, ph phase) phaseState {
	delta := ph.To - st.Progress
	if delta > 0 {
		st.Elapsed += delta / ph.Shape.speed()
	}
	st.Progress = ph.To
	st.Twist = ph.TwistTo
	return st
}

// twistSlots spreads a skill's twists over its flip segments. Slot 0 of the
// definition belongs to the stall; slot j to flip segment j-1. Slots past
// the last segment are folded into it.
func twistSlots(def skilldef.SkillDefinition, segments int) []float64 {
	slots := make([]float64, segments)
	for i := 1; i < len(def.Twists); i++ {
		j := min(i-1, segments-1)
		slots[j] += def.Twists[i]
	}
	return slots
}

// planPhases lays out the phases of a rotating skill.
func planPhases(def skilldef.SkillDefinition, props RenderProps) []phase {
	const eps = 1e-9

	flips := def.Flips
	total := def.TotalTwists()
	segments := max(int(math.Ceil(flips-eps)), 1)
	slots := twistSlots(def, segments)
	target := bodyShape(def.Position)

	// The stall never runs past the first flip, so later phases only move
	// forward.
	stall := min(max(props.StallRotation, 0), flips/2, math.Min(1, flips))
	twist := def.TwistAt(0)

	phases := []phase{
		{Kind: PhaseTakeoff, Shape: shapeBed, Joints: BedPose(def.StartingPosition)},
		{Kind: PhaseStall, To: stall, TwistTo: twist, Shape: shapeArmsDown, Joints: StraightArmsDown},
	}
	progress := stall
	current := shapeArmsDown

	for j := 0; j < segments; j++ {
		segEnd := math.Min(float64(j+1), flips)
		last := j == segments-1
		tw := slots[j]

		// Twisting flips other than the last are held straight with the
		// arms down so they read apart from the shaped flips.
		want := target
		if tw > 0 && !last {
			want = shapeArmsDown
		}

		if want != current {
			enter := max(math.Min(props.EnterRotation, (segEnd-progress)/2), 0)
			progress += enter
			phases = append(phases, phase{Kind: PhaseEnter, To: progress, TwistTo: twist, Shape: want, Joints: shapePose(want)})
			current = want
		}

		if !last {
			twist += tw
			progress = segEnd
			phases = append(phases, phase{Kind: PhaseHold, To: progress, TwistTo: twist, Shape: want, Joints: shapePose(want)})
			continue
		}

		remaining := flips - progress
		kick := math.Min(math.Max(props.KickoutRotation, 0), remaining/2)
		progress = flips - kick
		phases = append(phases, phase{Kind: PhaseFinal, To: progress, TwistTo: twist, Shape: want, Joints: shapePose(want)})

		// The last flip's twist happens while opening out, shared between
		// kickout and landing in proportion to the time each takes.
		kickTo := progress + kick/2
		kickTime := (kickTo - progress) / shapeArmsDown.speed()
		landTime := (flips - kickTo) / shapeBed.speed()
		share := 0.5
		if kickTime+landTime > 0 {
			share = kickTime / (kickTime + landTime)
		}
		phases = append(phases,
			phase{Kind: PhaseKickout, To: kickTo, TwistTo: twist + tw*share, Shape: shapeArmsDown, Joints: StraightArmsDown},
			phase{Kind: PhaseLanding, To: flips, TwistTo: total, Shape: shapeBed, Joints: BedPose(def.EndingPosition)},
		)
	}
	return phases
}
