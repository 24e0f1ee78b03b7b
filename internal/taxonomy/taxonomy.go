// Package taxonomy holds the static mapping from placement-test question
// identifiers to literacy skill categories. The tables are data, not
// behavior: threshold or category changes never touch control flow.
package taxonomy

// Skill keys for every category a question can belong to.
const (
	SkillLetterRecognition = "letter_recognition"
	SkillPhonics           = "phonics"
	SkillRhyming           = "rhyming"
	SkillGrammar           = "grammar"
	SkillReadingFluency    = "reading_fluency"
	SkillGeneral           = "general"
)

// questionSkills maps each known placement-test question to its skill
// category. Question ids outside the table fall back to SkillGeneral.
var questionSkills = map[int]string{
	1: SkillLetterRecognition, 2: SkillLetterRecognition, 3: SkillLetterRecognition, 4: SkillLetterRecognition,
	5: SkillPhonics, 6: SkillPhonics, 7: SkillPhonics, 8: SkillPhonics,
	9: SkillRhyming, 10: SkillRhyming, 11: SkillRhyming,
	12: SkillGrammar, 13: SkillGrammar,
	14: SkillReadingFluency, 15: SkillReadingFluency,
}

var displayNames = map[string]string{
	SkillLetterRecognition: "Letter Recognition",
	SkillPhonics:           "Phonics & Sounds",
	SkillRhyming:           "Rhyming Patterns",
	SkillGrammar:           "Grammar & Word Structure",
	SkillReadingFluency:    "Reading Fluency",
	SkillGeneral:           "General Skills",
}

// SkillFor resolves a question id to its skill key.
func SkillFor(questionID int) string {
	if key, ok := questionSkills[questionID]; ok {
		return key
	}
	return SkillGeneral
}

// DisplayName returns the human-readable name of a skill key. Unknown
// keys are returned verbatim so callers never render an empty label.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

// Keys lists every mapped skill key except the catch-all, in curriculum
// order (easiest concept first).
func Keys() []string {
	return []string{
		SkillLetterRecognition,
		SkillPhonics,
		SkillRhyming,
		SkillGrammar,
		SkillReadingFluency,
	}
}
