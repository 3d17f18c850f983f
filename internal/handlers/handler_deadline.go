package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/core/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// deadlineHandler exposes the deadline reconciler and the postponement ledger.
type deadlineHandler struct {
	reconciler   portssvc.ReconcilerSvcFacade
	postponement portssvc.PostponementSvcFacade
	location     *time.Location
}

func newDeadlineHandler(reconciler portssvc.ReconcilerSvcFacade, postponement portssvc.PostponementSvcFacade, location *time.Location) *deadlineHandler {
	if location == nil {
		location = time.Local
	}
	return &deadlineHandler{reconciler: reconciler, postponement: postponement, location: location}
}

// listPending returns the PMS tasks due on the date with no matching local
// entry. employeeID defaults to the caller; date defaults to today.
func (h *deadlineHandler) listPending(c *gin.Context) {
	employeeID := c.Query("employeeID")
	if employeeID == "" {
		id, ok := middleware.GetEmployeeIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		employeeID = id
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().In(h.location).Format("2006-01-02")
	}

	pending, err := h.reconciler.ComputePending(c.Request.Context(), employeeID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]dto.PendingTaskResponse, len(pending))
	for i, p := range pending {
		responses[i] = dto.ToPendingTaskResponse(p, h.dueDayKey)
	}
	c.JSON(http.StatusOK, gin.H{"employeeID": employeeID, "date": date, "tasks": responses})
}

func (h *deadlineHandler) postponeTask(c *gin.Context) {
	taskID := c.Param("taskID")
	actor, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PostponeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.postponement.Postpone(c.Request.Context(), taskID, actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postponementID": record.PostponementID, "sequence": record.Sequence})
}

func (h *deadlineHandler) acknowledgeTask(c *gin.Context) {
	taskID := c.Param("taskID")
	actor, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AcknowledgeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.postponement.Acknowledge(c.Request.Context(), taskID, actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ackID": record.AckID})
}

func (h *deadlineHandler) postponementHistory(c *gin.Context) {
	taskID := c.Param("taskID")

	records, err := h.postponement.History(c.Request.Context(), taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskID": taskID, "postponements": dto.ToPostponementResponses(records)})
}

// listSubtasks returns a task's PMS subtasks for drill-down display.
func (h *deadlineHandler) listSubtasks(c *gin.Context) {
	taskID := c.Param("taskID")

	subtasks := h.reconciler.TaskSubtasks(c.Request.Context(), taskID)
	responses := dto.ToSubtaskResponses(subtasks, func(s domain.Subtask) string {
		if s.DueDate == nil {
			return ""
		}
		return services.LocalDayKey(*s.DueDate, h.location)
	})
	c.JSON(http.StatusOK, gin.H{"taskID": taskID, "subtasks": responses})
}

func (h *deadlineHandler) dueDayKey(p domain.PendingTask) string {
	if p.Task.DueDate == nil {
		return ""
	}
	return services.LocalDayKey(*p.Task.DueDate, h.location)
}
