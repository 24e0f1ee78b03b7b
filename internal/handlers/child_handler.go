package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/readsprout/learning-service/internal/services"
	"github.com/readsprout/learning-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ChildHandler struct {
	BaseHandler
	achievementService services.AchievementService
	reportService      services.ReportService
}

func NewChildHandler(
	achievementService services.AchievementService,
	reportService services.ReportService,
	logger utils.Logger,
) *ChildHandler {
	return &ChildHandler{
		BaseHandler:        NewBaseHandler(logger),
		achievementService: achievementService,
		reportService:      reportService,
	}
}

// GetAchievements lists a child's earned badges in award order.
// @Summary List child achievements
// @Tags children
// @Produce json
// @Param child_id path uint true "Child ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /children/{child_id}/achievements [get]
func (h *ChildHandler) GetAchievements(c *gin.Context) {
	childID := ParseUintParam(c, "child_id")
	if childID == 0 {
		return
	}

	achievements, err := h.achievementService.GetByChild(c.Request.Context(), childID)
	if err != nil {
		h.LogError(c, err, "Failed to list achievements", "child_id", childID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Achievements retrieved",
		Data:    achievements,
	})
}

// ExportReport streams the child's progress report as an xlsx download.
// @Summary Export child progress report
// @Tags children
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param child_id path uint true "Child ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /children/{child_id}/report [get]
func (h *ChildHandler) ExportReport(c *gin.Context) {
	childID := ParseUintParam(c, "child_id")
	if childID == 0 {
		return
	}

	h.LogRequest(c, "Exporting child report", "child_id", childID)

	report, err := h.reportService.ExportChildReport(c.Request.Context(), childID)
	if err != nil {
		h.LogError(c, err, "Failed to export report", "child_id", childID)
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("child_%d_report.xlsx", childID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, report)
}
