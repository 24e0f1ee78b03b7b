package services

import (
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/taxonomy"
)

// Mastery timing rules: above slowThreshold the child is flagged as
// taking too long; under fastThreshold with a mastered score they get a
// speed strength.
const (
	slowAnswerSeconds = 30
	fastAnswerSeconds = 5
)

type skillBucket struct {
	key       string
	total     int
	correct   int
	timeTotal int
}

// AnalyzeSkills groups a submission's answers by skill category and
// produces one SkillReport per category present. Pure: no side effects,
// deterministic, report order is first-occurrence order of each skill.
// An empty answer slice yields no reports.
func AnalyzeSkills(answers []Answer) []SkillReport {
	var order []string
	buckets := make(map[string]*skillBucket)

	for _, answer := range answers {
		key := taxonomy.SkillFor(answer.QuestionID)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &skillBucket{key: key}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.total++
		bucket.timeTotal += answer.TimeSpentSeconds
		if answer.Correct() {
			bucket.correct++
		}
	}

	reports := make([]SkillReport, 0, len(order))
	for _, key := range order {
		reports = append(reports, buildSkillReport(buckets[key]))
	}
	return reports
}

func buildSkillReport(bucket *skillBucket) SkillReport {
	mastery := bucket.correct * 100 / bucket.total
	avgTime := float64(bucket.timeTotal) / float64(bucket.total)
	name := taxonomy.DisplayName(bucket.key)

	report := SkillReport{
		SkillKey:       bucket.key,
		DisplayName:    name,
		TotalQuestions: bucket.total,
		CorrectAnswers: bucket.correct,
		MasteryPercent: mastery,
		Status:         models.SkillStatusFor(mastery),
		AvgTimeSeconds: avgTime,
		Strengths:      []string{},
		Weaknesses:     []string{},
	}

	switch report.Status {
	case models.SkillMastered:
		report.Strengths = append(report.Strengths,
			fmt.Sprintf("Strong understanding of %s", name))
	case models.SkillLearning:
		report.Strengths = append(report.Strengths,
			fmt.Sprintf("Developing %s skills", name))
		report.Weaknesses = append(report.Weaknesses,
			fmt.Sprintf("Needs more practice with %s", name))
	default:
		report.Weaknesses = append(report.Weaknesses,
			fmt.Sprintf("Requires focused practice on %s", name))
	}

	if avgTime > slowAnswerSeconds {
		report.Weaknesses = append(report.Weaknesses,
			fmt.Sprintf("Taking too long on %s questions", name))
	} else if avgTime < fastAnswerSeconds && report.Status == models.SkillMastered {
		report.Strengths = append(report.Strengths,
			fmt.Sprintf("Quick and accurate with %s", name))
	}

	return report
}

// OverallAccuracy computes the submission-wide accuracy percentage.
// Empty submissions score zero; the classifier tolerates that.
func OverallAccuracy(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	correct := 0
	for _, answer := range answers {
		if answer.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(answers)) * 100
}
