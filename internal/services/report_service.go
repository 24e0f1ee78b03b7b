package services

import (
	"context"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/taxonomy"
	"github.com/readsprout/learning-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

const reportTimeFormat = "2006-01-02 15:04:05"

type reportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewReportService(repo repositories.Repository, logger utils.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ExportChildReport renders the child's current standing as an xlsx
// workbook: overview, latest skill breakdown, activity history and
// earned badges on separate sheets.
func (s *reportService) ExportChildReport(ctx context.Context, childID uint) ([]byte, error) {
	child, err := s.repo.Child().GetByID(ctx, childID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to load child: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	latest, err := s.repo.Assessment().GetLatestByChild(ctx, childID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load latest assessment: %w", err)
	}

	if err := s.writeOverviewSheet(f, child, latest); err != nil {
		return nil, err
	}
	if latest != nil {
		if err := s.writeSkillSheet(f, latest); err != nil {
			return nil, err
		}
	}
	if err := s.writeActivitySheet(ctx, f, childID); err != nil {
		return nil, err
	}
	if err := s.writeBadgeSheet(ctx, f, childID); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report workbook: %w", err)
	}

	s.logger.Info("exported child report", "child_id", childID, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (s *reportService) writeOverviewSheet(f *excelize.File, child *models.Child, latest *models.Assessment) error {
	const sheetName = "Overview"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to rename overview sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Child", child.Name},
		{"Age", child.Age},
		{"Current Level", string(child.CurrentLevel)},
		{"Native Language", child.NativeLanguage},
	}
	if latest != nil {
		rows = append(rows,
			[]interface{}{"Latest Assessment", latest.CreatedAt.Format(reportTimeFormat)},
			[]interface{}{"Accuracy", fmt.Sprintf("%.1f%%", latest.AccuracyPercent)},
			[]interface{}{"Questions Correct", fmt.Sprintf("%d / %d", latest.CorrectAnswers, latest.TotalQuestions)},
		)
		if latest.Plan != nil {
			rows = append(rows,
				[]interface{}{"Plan Duration (weeks)", latest.Plan.DurationWeeks},
				[]interface{}{"Plan Status", string(latest.Plan.Status)},
			)
		}
	} else {
		rows = append(rows, []interface{}{"Latest Assessment", "none yet"})
	}

	return writeRows(f, sheetName, nil, rows)
}

// writeSkillSheet recomputes per-skill mastery from the stored question
// rows, the same grouping the assessment used when it was graded.
func (s *reportService) writeSkillSheet(f *excelize.File, latest *models.Assessment) error {
	const sheetName = "Skills"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create skills sheet: %w", err)
	}

	type skillTally struct {
		correct int
		total   int
	}
	tallies := make(map[string]*skillTally)
	order := make([]string, 0)
	for _, q := range latest.Questions {
		tally, seen := tallies[q.SkillKey]
		if !seen {
			tally = &skillTally{}
			tallies[q.SkillKey] = tally
			order = append(order, q.SkillKey)
		}
		tally.total++
		if q.IsCorrect {
			tally.correct++
		}
	}

	rows := make([][]interface{}, 0, len(order))
	for _, key := range order {
		tally := tallies[key]
		mastery := tally.correct * 100 / tally.total
		rows = append(rows, []interface{}{
			taxonomy.DisplayName(key),
			tally.correct,
			tally.total,
			mastery,
			string(models.SkillStatusFor(mastery)),
		})
	}

	headers := []string{"Skill", "Correct", "Total", "Mastery %", "Status"}
	return writeRows(f, sheetName, headers, rows)
}

func (s *reportService) writeActivitySheet(ctx context.Context, f *excelize.File, childID uint) error {
	const sheetName = "Activities"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create activities sheet: %w", err)
	}

	records, err := s.repo.Activity().GetProgressByChild(ctx, childID)
	if err != nil {
		return fmt.Errorf("failed to load activity history: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		name, activityType := "", ""
		if record.Activity != nil {
			name = record.Activity.Name
			activityType = string(record.Activity.ActivityType)
		}
		rows = append(rows, []interface{}{
			name,
			activityType,
			string(record.CompletionStatus),
			record.TotalTimeSpentMinutes,
			record.UpdatedAt.Format(reportTimeFormat),
		})
	}

	headers := []string{"Activity", "Type", "Status", "Time Spent (minutes)", "Last Update"}
	return writeRows(f, sheetName, headers, rows)
}

func (s *reportService) writeBadgeSheet(ctx context.Context, f *excelize.File, childID uint) error {
	const sheetName = "Badges"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create badges sheet: %w", err)
	}

	badges, err := s.repo.Achievement().GetByChild(ctx, childID)
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}

	rows := make([][]interface{}, 0, len(badges))
	for _, badge := range badges {
		rows = append(rows, []interface{}{
			badge.Icon,
			badge.Name,
			badge.Description,
			badge.CreatedAt.Format(reportTimeFormat),
		})
	}

	headers := []string{"Icon", "Badge", "Description", "Earned At"}
	return writeRows(f, sheetName, headers, rows)
}

func writeRows(f *excelize.File, sheetName string, headers []string, rows [][]interface{}) error {
	startRow := 1
	if len(headers) > 0 {
		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			if err := f.SetCellValue(sheetName, cell, header); err != nil {
				return fmt.Errorf("failed to write header cell: %w", err)
			}
		}
		startRow = 2
	}
	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+startRow)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write report cell: %w", err)
			}
		}
	}
	return nil
}
