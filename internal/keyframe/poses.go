package keyframe

import (
	"math"

	"github.com/abhisek/bounce/internal/skilldef"
)

// shape identifies the body shape a phase is held in. It selects both the
// joint pose and the angular speed used to turn rotation into time.
type shape int

const (
	shapeBed shape = iota
	shapeArmsUp
	shapeArmsDown
	shapeTuck
	shapePike
	shapeStraight
)

// Reference poses.
var (
	StraightArmsUp   = symmetric(math.Pi, 0, 0)
	StraightArmsDown = symmetric(0, 0, 0)
	TuckPose         = symmetric(1.2, -2.2, 2.3)
	PikePose         = symmetric(1.6, -2.6, 0)
	StraightPose     = symmetric(math.Pi/2, 0, 0)
)

func symmetric(shoulder, thigh, shin float64) Joints {
	return Joints{
		LeftShoulder:  shoulder,
		RightShoulder: shoulder,
		LeftThigh:     thigh,
		RightThigh:    thigh,
		LeftShin:      shin,
		RightShin:     shin,
	}
}

// BedPose returns the joint pose for contact with the bed in position b.
func BedPose(b skilldef.BedPosition) Joints {
	switch b {
	case skilldef.Back:
		return symmetric(0.4, -0.5, 0.2)
	case skilldef.Stomach:
		return symmetric(2.4, 0, 0.3)
	case skilldef.Seated:
		return symmetric(0.5, -math.Pi/2, 0)
	case skilldef.HandsAndKnees:
		return symmetric(math.Pi/2, -math.Pi/2, math.Pi/2)
	default:
		return StraightArmsUp
	}
}

// BodyPose returns the joint pose for an in-air body position.
func BodyPose(p skilldef.BodyPosition) Joints {
	return shapePose(bodyShape(p))
}

func bodyShape(p skilldef.BodyPosition) shape {
	switch p {
	case skilldef.Tuck:
		return shapeTuck
	case skilldef.Pike:
		return shapePike
	default:
		return shapeStraight
	}
}

func shapePose(s shape) Joints {
	switch s {
	case shapeArmsUp:
		return StraightArmsUp
	case shapeTuck:
		return TuckPose
	case shapePike:
		return PikePose
	case shapeStraight:
		return StraightPose
	default:
		return StraightArmsDown
	}
}

// Angular speed multipliers relative to a straight body.
const (
	TuckSpeed     = 2.5
	PikeSpeed     = 2.0
	StraightSpeed = 1.0
)

func (s shape) speed() float64 {
	switch s {
	case shapeTuck:
		return TuckSpeed
	case shapePike:
		return PikeSpeed
	default:
		return StraightSpeed
	}
}
