package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/middleware"
	"github.com/tempushq/timesheet_backend/internal/realtime"
	"github.com/tempushq/timesheet_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
	location *time.Location,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// The websocket endpoint sits outside the JWT group; browsers cannot set
	// an Authorization header on the upgrade request.
	r.GET("/ws", newRealtimeHandler(hub).serveWS)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerDeadlineRoutes(v1, services, location)
	registerEntryRoutes(v1, services)
	registerTimesheetRoutes(v1, services)
	registerSettingsRoutes(v1, services)
}

func registerDeadlineRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer, location *time.Location) {
	handler := newDeadlineHandler(services.Reconciler, services.Postponement, location)

	deadlines := v1.Group("/deadlines")
	{
		deadlines.GET("/pending", handler.listPending)
		deadlines.POST("/:taskID/postpone", handler.postponeTask)
		deadlines.POST("/:taskID/acknowledge", handler.acknowledgeTask)
		deadlines.GET("/:taskID/postponements", handler.postponementHistory)
		deadlines.GET("/:taskID/subtasks", handler.listSubtasks)
	}
}

func registerEntryRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newTimeEntryHandler(services.TimeEntry, services.Approval)

	entries := v1.Group("/entries")
	{
		entries.POST("/", handler.createEntry)
		entries.GET("/", handler.listEntries)
		entries.PUT("/:entryID", handler.updateEntry)
		entries.POST("/:entryID/manager-approve", handler.managerApprove)
		entries.POST("/:entryID/approve", handler.adminApprove)
		entries.POST("/:entryID/reject", handler.rejectEntry)
	}
}

func registerTimesheetRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newSubmissionHandler(services.Submission)
	v1.POST("/timesheets/submit", handler.submitTimesheet)
}

func registerSettingsRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newSettingsHandler(services.Settings)

	settings := v1.Group("/settings")
	{
		settings.GET("/blocking", handler.getBlockingSetting)
		settings.PUT("/blocking", handler.updateBlockingSetting)
	}
}
