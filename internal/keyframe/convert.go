package keyframe

import (
	"math"

	"github.com/abhisek/bounce/internal/skilldef"
)

// zeroFlips is the rotation below which a skill is treated as non-rotating.
const zeroFlips = 0.01

// RotationMultiplier returns the sign applied to somersault progress. Back
// skills rotate negatively, and an odd number of incoming half twists
// leaves the athlete facing the other way, which reverses it again.
func RotationMultiplier(def skilldef.SkillDefinition, incomingTwist float64) float64 {
	m := 1.0
	if def.IsBackSkill {
		m = -m
	}
	halves := int(math.Floor(math.Abs(incomingTwist)/0.5 + 1e-9))
	if halves%2 == 1 {
		m = -m
	}
	return m
}

// MakeSkillFrames converts a definition into a normalized timeline.
// incomingTwist is the athlete's cumulative twist before this skill. When
// props is nil the budgets come from RenderPropertiesFor. The result
// depends only on the arguments.
func MakeSkillFrames(def skilldef.SkillDefinition, incomingTwist float64, props *RenderProps) Skill {
	m := RotationMultiplier(def, incomingTwist)
	if def.Flips < zeroFlips {
		return makeStaticFrames(def, m)
	}

	p := RenderPropertiesFor(def)
	if props != nil {
		p = *props
	}

	base := def.StartingPosition.RotationOffset() * m
	phases := planPhases(def, p)

	positions := make([]AthletePosition, 0, len(phases))
	elapsed := make([]float64, 0, len(phases))
	var st phaseState
	for _, ph := range phases {
		st = step(st, ph)
		positions = append(positions, AthletePosition{
			Rotation: base + m*st.Progress,
			Twist:    st.Twist,
			Joints:   ph.Joints,
		})
		elapsed = append(elapsed, st.Elapsed)
	}

	return Skill{Positions: positions, Timestamps: normalize(elapsed)}
}

// makeStaticFrames builds the short timeline of a non-rotating skill:
// bed pose, extension, the body shape at mid-flight for shaped skills, and
// the landing bed pose. Twist ramps linearly over the whole skill.
func makeStaticFrames(def skilldef.SkillDefinition, m float64) Skill {
	from := def.StartingPosition.RotationOffset() * m
	to := def.EndingPosition.RotationOffset() * m
	total := def.TotalTwists()

	at := func(t float64, j Joints) AthletePosition {
		return AthletePosition{
			Rotation: from + (to-from)*t,
			Twist:    total * t,
			Joints:   j,
		}
	}

	s := Skill{
		Positions:  []AthletePosition{at(0, BedPose(def.StartingPosition)), at(0.25, StraightArmsUp)},
		Timestamps: []float64{0, 0.25},
	}
	if def.Position == skilldef.Tuck || def.Position == skilldef.Pike {
		s.Positions = append(s.Positions, at(0.5, BodyPose(def.Position)))
		s.Timestamps = append(s.Timestamps, 0.5)
	}
	s.Positions = append(s.Positions, AthletePosition{Rotation: to, Twist: total, Joints: BedPose(def.EndingPosition)})
	s.Timestamps = append(s.Timestamps, 1)
	s.Timestamps = normalize(s.Timestamps)
	return s
}

// normalize maps elapsed times onto [0, 1]. A zero-length span maps every
// timestamp to 0.
func normalize(ts []float64) []float64 {
	out := make([]float64, len(ts))
	if len(ts) == 0 {
		return out
	}
	lo, hi := ts[0], ts[0]
	for _, t := range ts {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	span := hi - lo
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return out
	}
	for i, t := range ts {
		out[i] = (t - lo) / span
	}
	return out
}

// RoutineFrames converts each skill of a routine in order, threading the
// cumulative twist of earlier skills into later conversions.
func RoutineFrames(routine []skilldef.SkillDefinition, props func(skilldef.SkillDefinition) RenderProps) []Skill {
	out := make([]Skill, 0, len(routine))
	var cumulative float64
	for _, def := range routine {
		var p *RenderProps
		if props != nil {
			rp := props(def)
			p = &rp
		}
		out = append(out, MakeSkillFrames(def, cumulative, p))
		cumulative += def.TotalTwists()
	}
	return out
}
