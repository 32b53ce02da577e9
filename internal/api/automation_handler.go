package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api/dto"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// getAutomationConfigHandler
// @Summary      Gets the automation configuration
// @Tags         Automation
// @Produce      json
// @Success      200  {object}  domain.AutomationConfig
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /automation-config [get]
func (h *Handler) getAutomationConfigHandler(c *gin.Context) {
	cfg, err := h.automationService.GetConfig(c.Request.Context())
	if errors.Is(err, types.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching automation config."})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// saveAutomationConfigHandler
// @Summary      Saves the automation configuration
// @Description  Upserts the single automation config. Changing a day offset recomputes thresholds on the next tick and may retroactively re-arm rules for existing clients.
// @Tags         Automation
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.AutomationConfig
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /automation-config [put]
func (h *Handler) saveAutomationConfigHandler(c *gin.Context) {
	var req dto.AutomationConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	cfg, err := h.automationService.SaveConfig(c.Request.Context(), &domain.AutomationConfig{
		DueNoticeEnabled:                   req.DueNoticeEnabled,
		DueNoticeMessage:                   req.DueNoticeMessage,
		ReminderEnabled:                    req.ReminderEnabled,
		ReminderMessage:                    req.ReminderMessage,
		RemarketingPostDueDateEnabled:      req.RemarketingPostDueDateEnabled,
		RemarketingPostDueDateDays:         req.RemarketingPostDueDateDays,
		RemarketingPostDueDateMessage:      req.RemarketingPostDueDateMessage,
		RemarketingPostRegistrationEnabled: req.RemarketingPostRegistrationEnabled,
		RemarketingPostRegistrationDays:    req.RemarketingPostRegistrationDays,
		RemarketingPostRegistrationMessage: req.RemarketingPostRegistrationMessage,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while saving automation config."})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
