package models

import "testing"

func TestSkillStatusFor(t *testing.T) {
	tests := []struct {
		mastery int
		want    SkillStatus
	}{
		{0, SkillNeedsWork},
		{49, SkillNeedsWork},
		{50, SkillLearning},
		{79, SkillLearning},
		{80, SkillMastered},
		{100, SkillMastered},
	}
	for _, tt := range tests {
		if got := SkillStatusFor(tt.mastery); got != tt.want {
			t.Errorf("SkillStatusFor(%d) = %q, want %q", tt.mastery, got, tt.want)
		}
	}
}
