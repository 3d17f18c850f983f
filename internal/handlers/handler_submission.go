package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// submissionHandler exposes the submission gate.
type submissionHandler struct {
	submission portssvc.SubmissionSvcFacade
}

func newSubmissionHandler(submission portssvc.SubmissionSvcFacade) *submissionHandler {
	return &submissionHandler{submission: submission}
}

// submitTimesheet marks the day submitted. Outstanding deadline tasks come
// back as warnings; they never turn the request into an error.
func (h *submissionHandler) submitTimesheet(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workDate is required (YYYY-MM-DD)"})
		return
	}

	canSubmit, err := h.submission.CanSubmit(c.Request.Context(), employeeID, req.WorkDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canSubmit {
		c.JSON(http.StatusConflict, gin.H{"error": "no draft entries to submit for this date"})
		return
	}

	result, err := h.submission.Submit(c.Request.Context(), employeeID, req.WorkDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
