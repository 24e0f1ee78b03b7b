package services

import (
	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/taxonomy"
)

// Classification rules as an ordered table, first match wins. Keeping
// the thresholds in data means tuning never touches control flow.
type tierRule struct {
	maxAccuracy float64 // accuracy strictly below this matches
	gateSkill   string  // skill whose low mastery also matches
	gateMastery int     // mastery strictly below this triggers the gate
	tier        models.Tier
	focus       string
}

var tierRules = []tierRule{
	{maxAccuracy: 50, gateSkill: taxonomy.SkillLetterRecognition, gateMastery: 60,
		tier: models.TierBeginner, focus: "Letter Recognition"},
	{maxAccuracy: 75, gateSkill: taxonomy.SkillPhonics, gateMastery: 70,
		tier: models.TierIntermediate, focus: "Phonics & Sound Blending"},
}

const advancedFocus = "Reading Comprehension & Fluency"

// ClassifyLevel derives the proficiency tier and focus label from
// overall accuracy and the per-skill reports. Total: every input yields
// exactly one tier. Boundary accuracies (50, 75) fall into the higher
// tier because the rules compare strictly-below.
func ClassifyLevel(accuracy float64, reports []SkillReport) (models.Tier, string) {
	for _, rule := range tierRules {
		if accuracy < rule.maxAccuracy {
			return rule.tier, rule.focus
		}
		if report := findReport(reports, rule.gateSkill); report != nil && report.MasteryPercent < rule.gateMastery {
			return rule.tier, rule.focus
		}
	}
	return models.TierAdvanced, advancedFocus
}

func findReport(reports []SkillReport, skillKey string) *SkillReport {
	for i := range reports {
		if reports[i].SkillKey == skillKey {
			return &reports[i]
		}
	}
	return nil
}
