package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/readsprout/learning-service/internal/services"
	"github.com/readsprout/learning-service/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// SubmitAssessment grades a placement submission and returns the
// resulting tier, skill breakdown and generated plan reference.
// @Summary Submit placement assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param submission body services.AssessmentSubmission true "Answered questions"
// @Success 201 {object} services.AssessmentResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assessments/submit [post]
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var submission services.AssessmentSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting assessment",
		"child_id", submission.ChildID, "answers", len(submission.Answers))

	result, err := h.assessmentService.Submit(c.Request.Context(), &submission)
	if err != nil {
		h.LogError(c, err, "Assessment submission failed", "child_id", submission.ChildID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetChildAssessments lists a child's assessment history, oldest first.
// @Summary List child assessments
// @Tags assessments
// @Produce json
// @Param child_id path uint true "Child ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/child/{child_id} [get]
func (h *AssessmentHandler) GetChildAssessments(c *gin.Context) {
	childID := ParseUintParam(c, "child_id")
	if childID == 0 {
		return
	}

	assessments, err := h.assessmentService.GetByChild(c.Request.Context(), childID)
	if err != nil {
		h.LogError(c, err, "Failed to list assessments", "child_id", childID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Assessments retrieved",
		Data:    assessments,
	})
}
