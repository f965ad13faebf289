package keyframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bounce/internal/skilldef"
)

func kinds(phases []phase) []PhaseKind {
	out := make([]PhaseKind, len(phases))
	for i, p := range phases {
		out[i] = p.Kind
	}
	return out
}

func TestStep_ElapsedUsesShapeSpeed(t *testing.T) {
	st := step(phaseState{}, phase{To: 0.5, Shape: shapeTuck})
	assert.InDelta(t, 0.2, st.Elapsed, 1e-12)
	st = step(st, phase{To: 0.9, TwistTo: 1, Shape: shapePike})
	assert.InDelta(t, 0.4, st.Elapsed, 1e-12)
	assert.Equal(t, 0.9, st.Progress)
	assert.Equal(t, 1.0, st.Twist)

	// Zero-rotation phases cost no time.
	st = step(st, phase{To: 0.9, Shape: shapeArmsDown})
	assert.InDelta(t, 0.4, st.Elapsed, 1e-12)
}

func TestPlanPhases_SingleFlip(t *testing.T) {
	phases := planPhases(frontFlip(), RenderPropertiesFor(frontFlip()))
	assert.Equal(t, []PhaseKind{PhaseTakeoff, PhaseStall, PhaseEnter, PhaseFinal, PhaseKickout, PhaseLanding}, kinds(phases))
	assert.Equal(t, 1.0, phases[len(phases)-1].To)
	assert.InDelta(t, 0.8, phases[3].To, 1e-12)
}

func TestPlanPhases_TwistingFlipHeldArmsDown(t *testing.T) {
	fullIn := skilldef.SkillDefinition{
		Name:             "Full In Back",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            2,
		Twists:           []float64{0, 1, 0},
		Position:         skilldef.Tuck,
		IsBackSkill:      true,
	}
	phases := planPhases(fullIn, RenderPropertiesFor(fullIn))
	require.Equal(t, []PhaseKind{PhaseTakeoff, PhaseStall, PhaseHold, PhaseEnter, PhaseFinal, PhaseKickout, PhaseLanding}, kinds(phases))

	hold := phases[2]
	assert.Equal(t, shapeArmsDown, hold.Shape)
	assert.Equal(t, 1.0, hold.To)
	assert.Equal(t, 1.0, hold.TwistTo)
	assert.Equal(t, shapeTuck, phases[3].Shape)
}

func TestPlanPhases_LastFlipTwistSplitAcrossKickout(t *testing.T) {
	rudi := skilldef.SkillDefinition{
		Name:             "Rudolph",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            1,
		Twists:           []float64{0, 1.5},
		Position:         skilldef.Straight,
	}
	phases := planPhases(rudi, RenderPropertiesFor(rudi))
	n := len(phases)
	final, kick, land := phases[n-3], phases[n-2], phases[n-1]
	assert.Equal(t, 0.0, final.TwistTo)
	assert.InDelta(t, 0.75, kick.TwistTo, 1e-12)
	assert.Equal(t, 1.5, land.TwistTo)
}

func TestTwistSlots(t *testing.T) {
	def := skilldef.SkillDefinition{Twists: []float64{0.5, 1, 0, 1, 2}}
	assert.Equal(t, []float64{1, 3}, twistSlots(def, 2))
	assert.Equal(t, []float64{0}, twistSlots(skilldef.SkillDefinition{}, 1))
}

func TestMakeSkillFrames_LargeStallStaysMonotonic(t *testing.T) {
	triple := skilldef.SkillDefinition{
		Name:             "Triple Back",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            3,
		Twists:           []float64{0, 0, 0, 0},
		Position:         skilldef.Tuck,
		IsBackSkill:      true,
	}
	props := RenderProps{StallRotation: 2, KickoutRotation: 0.2, EnterRotation: 0.1}

	phases := planPhases(triple, props)
	assert.LessOrEqual(t, phases[1].To, 1.0, "stall ends inside the first flip")

	s := MakeSkillFrames(triple, 0, &props)
	for i := 1; i < s.Len(); i++ {
		// Back skills rotate negatively on screen.
		assert.LessOrEqual(t, s.Positions[i].Rotation, s.Positions[i-1].Rotation+1e-9, "keyframe %d rotates backward", i)
	}
	assert.InDelta(t, -3.0, s.Last().Rotation, 1e-9)
}
