package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/readsprout/learning-service/internal/services"
	"github.com/readsprout/learning-service/internal/utils"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	activityHandler   *ActivityHandler
	childHandler      *ChildHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		activityHandler:   NewActivityHandler(serviceManager.Activity(), logger),
		childHandler:      NewChildHandler(serviceManager.Achievement(), serviceManager.Report(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "learning-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		assessments := v1.Group("/assessments")
		{
			assessments.POST("/submit", hm.assessmentHandler.SubmitAssessment)
			assessments.GET("/child/:child_id", hm.assessmentHandler.GetChildAssessments)
		}

		activities := v1.Group("/activities")
		{
			activities.POST("/progress", hm.activityHandler.RecordProgress)
			activities.GET("/progress/:child_id", hm.activityHandler.GetChildProgress)
		}

		children := v1.Group("/children")
		{
			children.GET("/:child_id/achievements", hm.childHandler.GetAchievements)
			children.GET("/:child_id/report", hm.childHandler.ExportReport)
		}
	}
}
