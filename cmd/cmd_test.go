package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bounce/internal/keyframe"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bounce (devel)")
}

func TestVersionFlag(t *testing.T) {
	t.Cleanup(func() { rootCmd.Flags().Set("version", "false") })
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "bounce (devel)\n", out)
}

func TestRequirementShow(t *testing.T) {
	out, err := run(t, "requirement", "show", "compulsory")
	require.NoError(t, err)
	assert.Contains(t, out, "Compulsory Routine")
	assert.Contains(t, out, "skill-at-index-9")
}

func TestRequirementShow_Unknown(t *testing.T) {
	_, err := run(t, "requirement", "show", "grade-99")
	assert.Error(t, err)
}

func TestRoutineCheck(t *testing.T) {
	out, err := run(t, "routine", "check", "Seat Drop", "Seat to Feet", "Barani:Pike")
	require.NoError(t, err)
	assert.Contains(t, out, "Barani (Pike)")
}

func TestRoutineCheck_BrokenChain(t *testing.T) {
	out, err := run(t, "routine", "check", "Seat Drop", "Barani")
	assert.Error(t, err)
	assert.Contains(t, out, "starts from")
}

func TestSkillFrames(t *testing.T) {
	out, err := run(t, "skill", "frames", "Front Somersault")
	require.NoError(t, err)

	var frames keyframe.Skill
	require.NoError(t, json.Unmarshal([]byte(out), &frames))
	require.NotZero(t, frames.Len())
	assert.Equal(t, 0.0, frames.Timestamps[0])
	assert.Equal(t, 1.0, frames.Timestamps[len(frames.Timestamps)-1])
}

func TestRoutineFrames(t *testing.T) {
	out, err := run(t, "routine", "frames", "Barani:Pike", "Front Somersault:Tuck", "--bounce", "3")
	require.NoError(t, err)

	var frames []struct {
		Skill  string                     `json:"skill"`
		Frames keyframe.Skill             `json:"frames"`
		Bounce []keyframe.AthletePosition `json:"bounce"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &frames))
	require.Len(t, frames, 2)

	barani, front := frames[0], frames[1]
	assert.Equal(t, "Barani (Pike)", barani.Skill)
	assert.InDelta(t, 1.0, barani.Frames.Last().Rotation, 1e-9)
	// The half twist turns the athlete round, so the front somersault
	// rotates backward on screen.
	assert.InDelta(t, -1.0, front.Frames.Last().Rotation, 1e-9)

	require.Len(t, barani.Bounce, 3)
	assert.InDelta(t, barani.Frames.First().Joints.LeftThigh, barani.Bounce[2].Joints.LeftThigh, 1e-9)
	assert.Equal(t, barani.Frames.Last().Rotation, barani.Bounce[0].Rotation)
	assert.Empty(t, front.Bounce, "no bounce after the last landing")
}

func TestRoutineFrames_BrokenChain(t *testing.T) {
	_, err := run(t, "routine", "frames", "Seat Drop", "Barani")
	assert.Error(t, err)
}
