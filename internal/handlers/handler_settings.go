package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempushq/timesheet_backend/internal/core/domain"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
	"github.com/tempushq/timesheet_backend/internal/dto"
	"github.com/tempushq/timesheet_backend/internal/middleware"
)

// settingsHandler exposes the process-wide blocking flag. Updates are
// restricted to the admin role.
type settingsHandler struct {
	settings portssvc.SettingsSvcFacade
}

func newSettingsHandler(settings portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settings: settings}
}

func (h *settingsHandler) getBlockingSetting(c *gin.Context) {
	setting, err := h.settings.GetBlockingSetting(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BlockingSettingDTO{BlockingEnabled: setting.BlockingEnabled})
}

func (h *settingsHandler) updateBlockingSetting(c *gin.Context) {
	if middleware.GetRoleFromContext(c) != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var req dto.BlockingSettingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settings.UpdateBlockingSetting(c.Request.Context(), domain.BlockingSetting{BlockingEnabled: req.BlockingEnabled}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
