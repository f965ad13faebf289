// Package keyframe converts skill definitions into normalized animation
// timelines of athlete poses.
package keyframe

// Joints holds the six animated joint angles, in radians.
type Joints struct {
	LeftShoulder  float64 `json:"leftShoulder"`
	RightShoulder float64 `json:"rightShoulder"`
	LeftThigh     float64 `json:"leftThigh"`
	RightThigh    float64 `json:"rightThigh"`
	LeftShin      float64 `json:"leftShin"`
	RightShin     float64 `json:"rightShin"`
}

// AthletePosition is a single keyframe. Rotation and Twist are in full turns.
type AthletePosition struct {
	Rotation float64 `json:"rotation"`
	Twist    float64 `json:"twist"`
	Joints   Joints  `json:"joints"`
}

// Skill is an animation timeline: Positions[i] is reached at Timestamps[i].
// Timestamps are non-decreasing and span [0, 1].
type Skill struct {
	Positions  []AthletePosition `json:"positions"`
	Timestamps []float64         `json:"timestamps"`
}

// Len returns the number of keyframes.
func (s Skill) Len() int {
	return len(s.Positions)
}

// First returns the first keyframe. It panics on an empty timeline.
func (s Skill) First() AthletePosition {
	return s.Positions[0]
}

// Last returns the last keyframe. It panics on an empty timeline.
func (s Skill) Last() AthletePosition {
	return s.Positions[len(s.Positions)-1]
}
