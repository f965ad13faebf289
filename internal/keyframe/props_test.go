package keyframe

import (
	"testing"

	"github.com/abhisek/bounce/internal/skilldef"
)

func TestRenderPropertiesFor(t *testing.T) {
	tests := []struct {
		name      string
		def       skilldef.SkillDefinition
		wantStall float64
		wantKick  float64
	}{
		{"front flip", frontFlip(), DefaultStallRotation, DefaultKickoutRotation},
		{"near zero", skilldef.SkillDefinition{Flips: 0.5}, smallFlipRotation, smallFlipRotation},
		{"cody", skilldef.SkillDefinition{Flips: 1.25, StartingPosition: skilldef.Stomach, IsBackSkill: true}, againstBedStall, DefaultKickoutRotation},
		{"ball out", skilldef.SkillDefinition{Flips: 1.25, StartingPosition: skilldef.Back}, againstBedStall, DefaultKickoutRotation},
		{"back pullover", skilldef.SkillDefinition{Flips: 0.75, StartingPosition: skilldef.Back, IsBackSkill: true}, DefaultStallRotation, DefaultKickoutRotation},
		{"stall twist", skilldef.SkillDefinition{Flips: 1, Twists: []float64{0.5, 0}}, twistingStallRotation, DefaultKickoutRotation},
	}
	for _, tt := range tests {
		got := RenderPropertiesFor(tt.def)
		if got.StallRotation != tt.wantStall {
			t.Errorf("%s: StallRotation = %g, want %g", tt.name, got.StallRotation, tt.wantStall)
		}
		if got.KickoutRotation != tt.wantKick {
			t.Errorf("%s: KickoutRotation = %g, want %g", tt.name, got.KickoutRotation, tt.wantKick)
		}
	}
}

func TestRenderProps_Override(t *testing.T) {
	base := RenderProps{StallRotation: 0.15, KickoutRotation: 0.2, EnterRotation: 0.1}
	got := base.Override(RenderProps{KickoutRotation: 0.3})
	want := RenderProps{StallRotation: 0.15, KickoutRotation: 0.3, EnterRotation: 0.1}
	if got != want {
		t.Errorf("Override = %+v, want %+v", got, want)
	}
}
