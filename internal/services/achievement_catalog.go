package services

import "github.com/readsprout/learning-service/internal/models"

// AchievementDefinition is one catalog entry. The catalog is read-only
// and process-wide; per-child state lives only in achievement rows.
type AchievementDefinition struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// achievementCatalog is the full badge table. Entries without a matching
// predicate below (streak_* and skill_master_*) are defined but never
// unlocked: the aggregate read model has no streak or per-skill history
// yet, and inventing that tracking here would award badges on data we
// don't have.
var achievementCatalog = map[string]AchievementDefinition{
	// Assessment badges
	"first_assessment": {"first_assessment", "Brave Beginning", "🌟", 50, "Completed your first assessment"},
	"perfect_score":    {"perfect_score", "Perfect Scholar", "💯", 200, "Got 100% on assessment"},
	"letter_expert":    {"letter_expert", "Letter Expert", "🅰️+", 100, "Mastered letter recognition (100% in skill)"},
	"phonics_master":   {"phonics_master", "Phonics Pro", "🎵", 100, "Mastered phonics (100% in skill)"},

	// Activity badges
	"first_activity":       {"first_activity", "First Steps", "👣", 25, "Completed your first activity"},
	"five_activities":      {"five_activities", "Getting Started", "📚", 50, "Completed 5 activities"},
	"letter_hunt_champion": {"letter_hunt_champion", "Letter Hunt Champion", "🏆", 100, "Found all letters in Letter Hunt with perfect score"},
	"phonics_genius":       {"phonics_genius", "Phonics Genius", "🧠", 100, "Perfect score in Phonics Match"},
	"tiny_artist":          {"tiny_artist", "Tiny Artist", "🎨", 75, "Completed 3 tracing activities"},
	"activity_marathon":    {"activity_marathon", "Activity Marathon", "🏃", 150, "Completed 10 activities in one day"},

	// Streak badges
	"streak_3":  {"streak_3", "On Fire!", "🔥", 75, "3 day learning streak"},
	"streak_7":  {"streak_7", "Week Warrior", "⚔️", 200, "7 day learning streak"},
	"streak_14": {"streak_14", "Dedicated Learner", "💎", 500, "14 day learning streak"},
	"streak_30": {"streak_30", "Month Master", "👑", 1000, "30 day learning streak"},

	// Skill badges
	"beginner_complete":     {"beginner_complete", "Beginner Graduate", "🎓", 300, "Completed all Beginner level skills"},
	"intermediate_complete": {"intermediate_complete", "Rising Star", "⭐", 500, "Completed all Intermediate level skills"},
	"advanced_complete":     {"advanced_complete", "Super Reader", "🦸", 1000, "Completed all Advanced level skills"},
	"skill_master_letter":   {"skill_master_letter", "Letter Lord", "🔤", 150, "Mastered letter recognition skill (90%+)"},
	"skill_master_phonics":  {"skill_master_phonics", "Sound Specialist", "🎶", 150, "Mastered phonics skill (90%+)"},
	"skill_master_rhyming":  {"skill_master_rhyming", "Rhyme Ranger", "🎭", 150, "Mastered rhyming skill (90%+)"},
	"skill_master_grammar":  {"skill_master_grammar", "Grammar Guru", "📝", 150, "Mastered grammar skill (90%+)"},
	"skill_master_fluency":  {"skill_master_fluency", "Fluency Hero", "📖", 150, "Mastered reading fluency (90%+)"},

	// Special badges
	"speed_demon":      {"speed_demon", "Speed Demon", "⚡", 100, "Completed activity in under 2 minutes"},
	"night_owl":        {"night_owl", "Night Owl", "🦉", 50, "Completed activity after 8 PM"},
	"early_bird":       {"early_bird", "Early Bird", "🐦", 50, "Completed activity before 9 AM"},
	"perfectionist":    {"perfectionist", "Perfectionist", "💎", 300, "5 perfect activity scores in a row"},
	"explorer":         {"explorer", "Explorer", "🗺️", 100, "Tried all 3 activity types"},
	"social_butterfly": {"social_butterfly", "Social Butterfly", "🦋", 75, "Invited parent to see progress"},
}

// CatalogDefinition looks up one badge definition by key.
func CatalogDefinition(key string) (AchievementDefinition, bool) {
	def, ok := achievementCatalog[key]
	return def, ok
}

// Badge unlock thresholds.
const (
	perfectActivityScore = 90
	speedDemonSeconds    = 120
	tinyArtistTracing    = 3
	fiveActivitiesCount  = 5
)

// badgeRule pairs a catalog key with its unlock predicate. Rules are an
// ordered slice so the returned award list is deterministic; predicates
// are independent of one another.
type badgeRule struct {
	key      string
	unlocked func(agg *aggregateView, trigger *ActivityTrigger) bool
}

type aggregateView struct {
	totalCompleted   int
	tracingCompleted int
	latestAssessment *models.Assessment
}

var badgeRules = []badgeRule{
	{"first_activity", func(agg *aggregateView, _ *ActivityTrigger) bool {
		return agg.totalCompleted >= 1
	}},
	{"five_activities", func(agg *aggregateView, _ *ActivityTrigger) bool {
		return agg.totalCompleted >= fiveActivitiesCount
	}},
	{"letter_hunt_champion", func(_ *aggregateView, trigger *ActivityTrigger) bool {
		return trigger != nil && containsFold(trigger.ActivityName, "letter hunt") &&
			trigger.Score >= perfectActivityScore
	}},
	{"phonics_genius", func(_ *aggregateView, trigger *ActivityTrigger) bool {
		return trigger != nil && containsFold(trigger.ActivityName, "phonics") &&
			trigger.Score >= perfectActivityScore
	}},
	{"tiny_artist", func(agg *aggregateView, _ *ActivityTrigger) bool {
		return agg.tracingCompleted >= tinyArtistTracing
	}},
	{"speed_demon", func(_ *aggregateView, trigger *ActivityTrigger) bool {
		return trigger != nil && trigger.DurationSeconds > 0 &&
			trigger.DurationSeconds < speedDemonSeconds
	}},
	{"first_assessment", func(agg *aggregateView, _ *ActivityTrigger) bool {
		return agg.latestAssessment != nil
	}},
	{"perfect_score", func(agg *aggregateView, _ *ActivityTrigger) bool {
		return agg.latestAssessment != nil && agg.latestAssessment.AccuracyPercent >= 100
	}},
}
