package keyframe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bounce/internal/skilldef"
)

func frontFlip() skilldef.SkillDefinition {
	return skilldef.SkillDefinition{
		Name:             "Front Flip",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            1,
		Twists:           []float64{0, 0},
		Position:         skilldef.Tuck,
	}
}

func builtinSkills(t *testing.T) []skilldef.SkillDefinition {
	t.Helper()
	c, err := skilldef.Builtin()
	require.NoError(t, err)
	return c.Instances()
}

func assertTimeline(t *testing.T, name string, s Skill) {
	t.Helper()
	require.NotEmpty(t, s.Timestamps, name)
	require.Len(t, s.Positions, len(s.Timestamps), name)
	assert.Equal(t, 0.0, s.Timestamps[0], "%s: first timestamp", name)
	assert.Equal(t, 1.0, s.Timestamps[len(s.Timestamps)-1], "%s: last timestamp", name)
	for i := 1; i < len(s.Timestamps); i++ {
		assert.LessOrEqual(t, s.Timestamps[i-1], s.Timestamps[i], "%s: timestamp %d decreases", name, i)
	}
}

func TestMakeSkillFrames_FrontFlip(t *testing.T) {
	s := MakeSkillFrames(frontFlip(), 0, nil)
	assertTimeline(t, "front flip", s)

	assert.InDelta(t, 0, s.First().Rotation, 1e-9)
	assert.InDelta(t, 1.0, s.Last().Rotation, 1e-9)
	for i, p := range s.Positions {
		assert.InDelta(t, 0, p.Twist, 1e-9, "keyframe %d twist", i)
	}
	assert.Equal(t, BedPose(skilldef.Standing), s.First().Joints)
	assert.Equal(t, BedPose(skilldef.Standing), s.Last().Joints)
	assert.Equal(t, 6, s.Len())
}

func TestMakeSkillFrames_RotatingInvariants(t *testing.T) {
	for _, def := range builtinSkills(t) {
		if def.Flips <= 0 {
			continue
		}
		s := MakeSkillFrames(def, 0, nil)
		name := def.String()
		assertTimeline(t, name, s)
		assert.InDelta(t, def.TotalTwists(), s.Last().Twist, 1e-2, "%s: final twist", name)

		diff := s.Last().Rotation - s.First().Rotation
		if def.IsBackSkill {
			assert.InDelta(t, -def.Flips, diff, 0.5, "%s: rotation", name)
		} else {
			assert.InDelta(t, def.Flips, diff, 0.5, "%s: rotation", name)
		}
	}
}

func TestMakeSkillFrames_StaticInvariants(t *testing.T) {
	for _, def := range builtinSkills(t) {
		if def.Flips > 0 {
			continue
		}
		s := MakeSkillFrames(def, 0, nil)
		name := def.String()
		assertTimeline(t, name, s)
		assert.GreaterOrEqual(t, s.Len(), 3, name)
		assert.LessOrEqual(t, s.Len(), 5, name)
		assert.InDelta(t, def.TotalTwists(), s.Last().Twist, 1e-9, name)
		assert.Equal(t, BedPose(def.EndingPosition), s.Last().Joints, name)
	}
}

func TestMakeSkillFrames_StaticTuckHasMidShape(t *testing.T) {
	def := skilldef.SkillDefinition{
		Name:             "Tuck Jump",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Twists:           []float64{0},
		Position:         skilldef.Tuck,
	}
	s := MakeSkillFrames(def, 0, nil)
	require.Equal(t, 4, s.Len())
	assert.Equal(t, 0.5, s.Timestamps[2])
	assert.Equal(t, TuckPose, s.Positions[2].Joints)
}

func TestMakeSkillFrames_StaticTwistRamp(t *testing.T) {
	def := skilldef.SkillDefinition{
		Name:             "Full Twist Jump",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Twists:           []float64{1},
		Position:         skilldef.Straight,
	}
	s := MakeSkillFrames(def, 0, nil)
	for i, p := range s.Positions {
		assert.InDelta(t, s.Timestamps[i], p.Twist, 1e-9, "twist should ramp linearly")
	}
}

func TestMakeSkillFrames_Deterministic(t *testing.T) {
	for _, def := range builtinSkills(t) {
		a := MakeSkillFrames(def, 0.5, nil)
		b := MakeSkillFrames(def, 0.5, nil)
		assert.Equal(t, a, b, def.String())
	}
}

func TestMakeSkillFrames_BackSkillInvertsRotationNotTwist(t *testing.T) {
	front := skilldef.SkillDefinition{
		Name:             "Full",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            1,
		Twists:           []float64{0, 1},
		Position:         skilldef.Straight,
	}
	back := front
	back.IsBackSkill = true

	f := MakeSkillFrames(front, 0, nil)
	b := MakeSkillFrames(back, 0, nil)
	require.Equal(t, f.Len(), b.Len())
	for i := range f.Positions {
		assert.InDelta(t, f.Positions[i].Rotation, -b.Positions[i].Rotation, 1e-12)
		assert.InDelta(t, f.Positions[i].Twist, b.Positions[i].Twist, 1e-12)
	}
	assert.Equal(t, f.Timestamps, b.Timestamps)
}

func TestMakeSkillFrames_IncomingHalfTwistReversesRotation(t *testing.T) {
	plain := MakeSkillFrames(frontFlip(), 0, nil)
	turned := MakeSkillFrames(frontFlip(), 0.5, nil)
	full := MakeSkillFrames(frontFlip(), 1, nil)

	assert.InDelta(t, 1.0, plain.Last().Rotation, 1e-9)
	assert.InDelta(t, -1.0, turned.Last().Rotation, 1e-9)
	assert.InDelta(t, 1.0, full.Last().Rotation, 1e-9)
}

func TestMakeSkillFrames_StartingOffset(t *testing.T) {
	cody := skilldef.SkillDefinition{
		Name:             "Cody",
		StartingPosition: skilldef.Stomach,
		EndingPosition:   skilldef.Standing,
		Flips:            1.25,
		Twists:           []float64{0, 0, 0},
		Position:         skilldef.Tuck,
		IsBackSkill:      true,
	}
	s := MakeSkillFrames(cody, 0, nil)
	assert.InDelta(t, -0.25, s.First().Rotation, 1e-9)
	assert.InDelta(t, -1.5, s.Last().Rotation, 1e-9)
}

func TestMakeSkillFrames_PropsOverride(t *testing.T) {
	props := RenderProps{StallRotation: 0.4, KickoutRotation: 0.1, EnterRotation: 0.05}
	s := MakeSkillFrames(frontFlip(), 0, &props)
	assertTimeline(t, "override", s)
	// takeoff, stall
	assert.InDelta(t, 0.4, s.Positions[1].Rotation, 1e-9)
}

func TestRotationMultiplier(t *testing.T) {
	tests := []struct {
		back     bool
		incoming float64
		want     float64
	}{
		{false, 0, 1},
		{true, 0, -1},
		{false, 0.5, -1},
		{true, 0.5, 1},
		{false, 1.0, 1},
		{false, 1.5, -1},
		{true, 2.5, 1},
	}
	for _, tt := range tests {
		def := skilldef.SkillDefinition{IsBackSkill: tt.back}
		if got := RotationMultiplier(def, tt.incoming); got != tt.want {
			t.Errorf("RotationMultiplier(back=%v, incoming=%g) = %g, want %g", tt.back, tt.incoming, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 1}, normalize([]float64{2, 3, 6}))
	assert.Equal(t, []float64{0, 0, 0}, normalize([]float64{4, 4, 4}))
	assert.Empty(t, normalize(nil))
	for _, v := range normalize([]float64{0, 0}) {
		assert.False(t, math.IsNaN(v))
	}
}

func TestRoutineFrames_ThreadsTwist(t *testing.T) {
	barani := skilldef.SkillDefinition{
		Name:             "Barani",
		StartingPosition: skilldef.Standing,
		EndingPosition:   skilldef.Standing,
		Flips:            1,
		Twists:           []float64{0, 0.5},
		Position:         skilldef.Pike,
	}
	out := RoutineFrames([]skilldef.SkillDefinition{barani, frontFlip()}, nil)
	require.Len(t, out, 2)
	assert.InDelta(t, 1.0, out[0].Last().Rotation, 1e-9)
	// After a half twist the athlete faces backward, so the next forward
	// flip rotates the other way on screen.
	assert.InDelta(t, -1.0, out[1].Last().Rotation, 1e-9)
}
