package keyframe

import "sort"

// At interpolates the pose at normalized time t, clamped to [0, 1].
func (s Skill) At(t float64) AthletePosition {
	n := len(s.Positions)
	switch {
	case n == 0:
		return AthletePosition{}
	case n == 1 || t <= s.Timestamps[0]:
		return s.Positions[0]
	case t >= s.Timestamps[n-1]:
		return s.Positions[n-1]
	}

	// First keyframe strictly after t; its predecessor brackets t.
	i := sort.Search(n, func(i int) bool { return s.Timestamps[i] > t })
	a, b := s.Timestamps[i-1], s.Timestamps[i]
	if b <= a {
		return s.Positions[i]
	}
	return Lerp(s.Positions[i-1], s.Positions[i], (t-a)/(b-a))
}

// Bounce interpolates from the landing keyframe back toward the first
// keyframe's joint pose, keeping the landed rotation and twist. f runs
// from 0 (landed) to 1 (ready to take off again).
func (s Skill) Bounce(f float64) AthletePosition {
	if len(s.Positions) == 0 {
		return AthletePosition{}
	}
	last := s.Last()
	rest := AthletePosition{Rotation: last.Rotation, Twist: last.Twist, Joints: s.First().Joints}
	return Lerp(last, rest, clamp01(f))
}

// Lerp linearly interpolates between two poses.
func Lerp(a, b AthletePosition, f float64) AthletePosition {
	return AthletePosition{
		Rotation: lerp(a.Rotation, b.Rotation, f),
		Twist:    lerp(a.Twist, b.Twist, f),
		Joints: Joints{
			LeftShoulder:  lerp(a.Joints.LeftShoulder, b.Joints.LeftShoulder, f),
			RightShoulder: lerp(a.Joints.RightShoulder, b.Joints.RightShoulder, f),
			LeftThigh:     lerp(a.Joints.LeftThigh, b.Joints.LeftThigh, f),
			RightThigh:    lerp(a.Joints.RightThigh, b.Joints.RightThigh, f),
			LeftShin:      lerp(a.Joints.LeftShin, b.Joints.LeftShin, f),
			RightShin:     lerp(a.Joints.RightShin, b.Joints.RightShin, f),
		},
	}
}

// Sample returns n evenly spaced poses covering [0, 1].
func (s Skill) Sample(n int) []AthletePosition {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []AthletePosition{s.At(0)}
	}
	out := make([]AthletePosition, n)
	for i := range out {
		out[i] = s.At(float64(i) / float64(n-1))
	}
	return out
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
