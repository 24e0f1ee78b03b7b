package services

import (
	"strconv"
	"strings"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/taxonomy"
)

// Curriculum content lives in the tables below, keyed by
// (tier, week band). Each band carries a generic template and, for the
// skill it teaches, a weakness-targeted variant chosen when the child's
// ranked weaknesses include that skill. Template strings use the tokens
// {week}, {day}, {skill}, {mastery} and {target}, resolved at render
// time; changing wording or thresholds never touches generator logic.

const masteryTarget = 70

type goalTemplate struct {
	title string
	goals []string
	focus string
}

type dayTemplate struct {
	activityType models.ActivityType
	name         string
	content      string
	minutes      int
	difficulty   models.Difficulty
}

type weekBand struct {
	// through is the last week number this band covers; 0 covers the
	// remainder of the plan.
	through int

	// match is the skill key that unlocks the targeted variants when it
	// appears among the ranked weaknesses.
	match string

	generic  goalTemplate
	targeted goalTemplate

	// evenDay/oddDay alternate activity types across the week.
	evenDay dayTemplate
	oddDay  dayTemplate
}

var curriculumBands = map[models.Tier][]weekBand{
	models.TierBeginner: {
		{
			through: 2,
			match:   taxonomy.SkillLetterRecognition,
			generic: goalTemplate{
				title: "Letter Recognition Mastery",
				goals: []string{
					"Practice identifying 5 new letters daily",
					"Complete 3 Letter Hunt games",
					"Trace 10 letters per day",
				},
				focus: taxonomy.SkillLetterRecognition,
			},
			targeted: goalTemplate{
				title: "Targeted Letter Practice",
				goals: []string{
					"Focus on {skill} (currently {mastery}%, aiming for {target}%+)",
					"Complete 3 Letter Hunt games on missed letters",
					"Trace 10 letters per day, slowly and carefully",
					"Review yesterday's letters before starting",
				},
				focus: taxonomy.SkillLetterRecognition,
			},
			evenDay: dayTemplate{models.ActivityGame, "Letter Hunt - Week {week} Day {day}",
				"Find target letters hidden in a picture scene", 10, models.DifficultyEasy},
			oddDay: dayTemplate{models.ActivityTracing, "Trace Letters - Week {week} Day {day}",
				"Trace uppercase and lowercase letters", 15, models.DifficultyEasy},
		},
		{
			through: 4,
			match:   taxonomy.SkillPhonics,
			generic: goalTemplate{
				title: "Beginning Phonics",
				goals: []string{
					"Learn 3 letter sounds per week",
					"Match sounds to pictures",
					"Sing alphabet songs daily",
				},
				focus: taxonomy.SkillPhonics,
			},
			targeted: goalTemplate{
				title: "Targeted Sound Practice",
				goals: []string{
					"Strengthen {skill} from {mastery}% toward {target}%+",
					"Match sounds to pictures every day",
					"Repeat tricky sounds out loud with a grown-up",
				},
				focus: taxonomy.SkillPhonics,
			},
			evenDay: dayTemplate{models.ActivityGame, "Sound Match - Week {week} Day {day}",
				"Match letter sounds to pictures", 10, models.DifficultyEasy},
			oddDay: dayTemplate{models.ActivityVideo, "Alphabet Sounds - Week {week} Day {day}",
				"Sing along with letter sound songs", 10, models.DifficultyEasy},
		},
		{
			through: 6,
			match:   taxonomy.SkillRhyming,
			generic: goalTemplate{
				title: "Simple Rhyming",
				goals: []string{
					"Identify rhyming words in stories",
					"Play rhyming games",
					"Create word families",
				},
				focus: taxonomy.SkillRhyming,
			},
			targeted: goalTemplate{
				title: "Targeted Rhyming Practice",
				goals: []string{
					"Build {skill} from {mastery}% toward {target}%+",
					"Play one rhyming game per day",
					"Make up silly rhymes together at bedtime",
				},
				focus: taxonomy.SkillRhyming,
			},
			evenDay: dayTemplate{models.ActivityGame, "Rhyme Time - Week {week} Day {day}",
				"Pick the word that rhymes", 10, models.DifficultyEasy},
			oddDay: dayTemplate{models.ActivityReading, "Rhyming Story - Week {week} Day {day}",
				"Listen for rhyming words in a short story", 15, models.DifficultyEasy},
		},
		{
			through: 0,
			match:   taxonomy.SkillReadingFluency,
			generic: goalTemplate{
				title: "Reading Readiness",
				goals: []string{
					"Read simple words",
					"Practice sight words",
					"Complete comprehension activities",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			targeted: goalTemplate{
				title: "Targeted Reading Readiness",
				goals: []string{
					"Lift {skill} from {mastery}% toward {target}%+",
					"Practice sight words daily",
					"Read one simple story together per day",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			evenDay: dayTemplate{models.ActivityReading, "Sight Words - Week {week} Day {day}",
				"Practice common sight words", 15, models.DifficultyEasy},
			oddDay: dayTemplate{models.ActivityGame, "Word Builder - Week {week} Day {day}",
				"Build simple words from letters", 10, models.DifficultyEasy},
		},
	},

	models.TierIntermediate: {
		{
			through: 2,
			match:   taxonomy.SkillPhonics,
			generic: goalTemplate{
				title: "Phonics Reinforcement",
				goals: []string{
					"Master all letter sounds",
					"Blend simple sounds (CVC words)",
					"Complete 4 Phonics Match games",
				},
				focus: taxonomy.SkillPhonics,
			},
			targeted: goalTemplate{
				title: "Targeted Phonics Reinforcement",
				goals: []string{
					"Raise {skill} from {mastery}% to {target}%+",
					"Blend simple sounds (CVC words) daily",
					"Complete 4 Phonics Match games on weak sounds",
					"Re-try any game scored under 80%",
				},
				focus: taxonomy.SkillPhonics,
			},
			evenDay: dayTemplate{models.ActivityGame, "Phonics Match - Week {week} Day {day}",
				"Blend sounds into CVC words", 15, models.DifficultyMedium},
			oddDay: dayTemplate{models.ActivityTracing, "Write the Word - Week {week} Day {day}",
				"Write words after sounding them out", 15, models.DifficultyMedium},
		},
		{
			through: 4,
			match:   taxonomy.SkillPhonics,
			generic: goalTemplate{
				title: "Word Building",
				goals: []string{
					"Build 3-letter words",
					"Practice common word families",
					"Read simple sentences",
				},
				focus: taxonomy.SkillPhonics,
			},
			targeted: goalTemplate{
				title: "Targeted Word Building",
				goals: []string{
					"Keep working {skill} toward {target}%+ (now {mastery}%)",
					"Build word families from known sounds",
					"Read simple sentences using this week's words",
				},
				focus: taxonomy.SkillPhonics,
			},
			evenDay: dayTemplate{models.ActivityGame, "Word Family Sort - Week {week} Day {day}",
				"Sort words into word families", 15, models.DifficultyMedium},
			oddDay: dayTemplate{models.ActivityReading, "Simple Sentences - Week {week} Day {day}",
				"Read short sentences aloud", 15, models.DifficultyMedium},
		},
		{
			through: 0,
			match:   taxonomy.SkillReadingFluency,
			generic: goalTemplate{
				title: "Reading Practice",
				goals: []string{
					"Read 5 short stories",
					"Answer comprehension questions",
					"Practice reading aloud",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			targeted: goalTemplate{
				title: "Targeted Reading Practice",
				goals: []string{
					"Grow {skill} from {mastery}% toward {target}%+",
					"Read one short story per day",
					"Answer two comprehension questions per story",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			evenDay: dayTemplate{models.ActivityReading, "Short Story - Week {week} Day {day}",
				"Read a short story and answer questions", 20, models.DifficultyMedium},
			oddDay: dayTemplate{models.ActivityGame, "Comprehension Quiz - Week {week} Day {day}",
				"Answer questions about the last story read", 10, models.DifficultyMedium},
		},
	},

	models.TierAdvanced: {
		{
			through: 3,
			match:   taxonomy.SkillPhonics,
			generic: goalTemplate{
				title: "Advanced Phonics",
				goals: []string{
					"Master complex letter patterns",
					"Read multi-syllable words",
					"Practice pronunciation",
				},
				focus: taxonomy.SkillPhonics,
			},
			targeted: goalTemplate{
				title: "Targeted Advanced Phonics",
				goals: []string{
					"Close the gap in {skill}: {mastery}% now, {target}%+ the goal",
					"Read multi-syllable words daily",
					"Practice pronunciation of tricky patterns",
				},
				focus: taxonomy.SkillPhonics,
			},
			evenDay: dayTemplate{models.ActivityReading, "Reading Practice - Week {week} Day {day}",
				"Read multi-syllable words and short passages", 20, models.DifficultyHard},
			oddDay: dayTemplate{models.ActivityGame, "Pattern Hunt - Week {week} Day {day}",
				"Spot complex letter patterns in words", 15, models.DifficultyHard},
		},
		{
			through: 0,
			match:   taxonomy.SkillReadingFluency,
			generic: goalTemplate{
				title: "Fluency & Comprehension",
				goals: []string{
					"Read chapter books",
					"Discuss story elements",
					"Write simple sentences",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			targeted: goalTemplate{
				title: "Targeted Fluency & Comprehension",
				goals: []string{
					"Push {skill} from {mastery}% toward {target}%+",
					"Read a chapter per day and retell it",
					"Write one sentence about each chapter",
				},
				focus: taxonomy.SkillReadingFluency,
			},
			evenDay: dayTemplate{models.ActivityReading, "Chapter Reading - Week {week} Day {day}",
				"Read a chapter and retell the story", 20, models.DifficultyHard},
			oddDay: dayTemplate{models.ActivityTracing, "Sentence Writing - Week {week} Day {day}",
				"Write simple sentences about the story", 15, models.DifficultyHard},
		},
	},
}

// bandForWeek selects the template band covering a given week number.
func bandForWeek(tier models.Tier, week int) weekBand {
	bands := curriculumBands[tier]
	for _, band := range bands {
		if band.through == 0 || week <= band.through {
			return band
		}
	}
	return bands[len(bands)-1]
}

func renderTemplate(text string, week, day int, weakness *SkillReport) string {
	pairs := []string{
		"{week}", strconv.Itoa(week),
		"{day}", strconv.Itoa(day),
		"{target}", strconv.Itoa(masteryTarget),
	}
	if weakness != nil {
		pairs = append(pairs,
			"{skill}", weakness.DisplayName,
			"{mastery}", strconv.Itoa(weakness.MasteryPercent),
		)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
