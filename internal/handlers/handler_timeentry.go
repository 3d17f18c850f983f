package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// timeEntryHandler handles HTTP requests for local time entries and their
// approval transitions.
type timeEntryHandler struct {
	entries  portssvc.TimeEntrySvcFacade
	approval portssvc.ApprovalSvcFacade
}

func newTimeEntryHandler(entries portssvc.TimeEntrySvcFacade, approval portssvc.ApprovalSvcFacade) *timeEntryHandler {
	return &timeEntryHandler{entries: entries, approval: approval}
}

func (h *timeEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entries.CreateEntry(c.Request.Context(), employeeID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

func (h *timeEntryHandler) updateEntry(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entries.UpdateEntry(c.Request.Context(), employeeID, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *timeEntryHandler) listEntries(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	entries, err := h.entries.ListEntriesForDay(c.Request.Context(), employeeID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToTimeEntryResponses(entries)})
}

func (h *timeEntryHandler) managerApprove(c *gin.Context) {
	approverID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.approval.ManagerApprove(c.Request.Context(), c.Param("entryID"), approverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *timeEntryHandler) adminApprove(c *gin.Context) {
	approverID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.approval.AdminApprove(c.Request.Context(), c.Param("entryID"), approverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *timeEntryHandler) rejectEntry(c *gin.Context) {
	approverID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	entry, err := h.approval.Reject(c.Request.Context(), c.Param("entryID"), approverID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}
