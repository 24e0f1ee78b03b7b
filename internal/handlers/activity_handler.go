package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/readsprout/learning-service/internal/services"
	"github.com/readsprout/learning-service/internal/utils"
)

type ActivityHandler struct {
	BaseHandler
	activityService services.ActivityService
}

func NewActivityHandler(
	activityService services.ActivityService,
	logger utils.Logger,
) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     NewBaseHandler(logger),
		activityService: activityService,
	}
}

// RecordProgress records one activity-completion event and returns the
// updated progress row plus any badges it unlocked.
// @Summary Record activity progress
// @Tags activities
// @Accept json
// @Produce json
// @Param submission body services.ActivitySubmission true "Completion event"
// @Success 200 {object} services.ActivityProgressResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activities/progress [post]
func (h *ActivityHandler) RecordProgress(c *gin.Context) {
	var submission services.ActivitySubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Recording activity progress", "child_id", submission.ChildID)

	result, err := h.activityService.RecordProgress(c.Request.Context(), &submission)
	if err != nil {
		h.LogError(c, err, "Failed to record activity progress", "child_id", submission.ChildID)
		handleServiceError(c, err)
		return
	}

	// A partial badge failure still recorded the progress; surface the
	// completed work with a warning code instead of failing the request.
	if len(result.BadgeFailures) > 0 {
		c.JSON(http.StatusOK, SuccessResponse{
			Message: "Progress recorded; some badges could not be awarded",
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Progress recorded",
		Data:    result,
	})
}

// GetChildProgress lists a child's activity progress history.
// @Summary List child activity progress
// @Tags activities
// @Produce json
// @Param child_id path uint true "Child ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /activities/progress/{child_id} [get]
func (h *ActivityHandler) GetChildProgress(c *gin.Context) {
	childID := ParseUintParam(c, "child_id")
	if childID == 0 {
		return
	}

	records, err := h.activityService.GetChildProgress(c.Request.Context(), childID)
	if err != nil {
		h.LogError(c, err, "Failed to list activity progress", "child_id", childID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Progress retrieved",
		Data:    records,
	})
}
