package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api/dto"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// createScheduledMessageHandler
// @Summary      Schedules a group message
// @Description  Creates a pending one-off or daily-recurring group message, optionally with an image payload.
// @Tags         Scheduled Messages
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.ScheduledMessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /scheduled-messages [post]
func (h *Handler) createScheduledMessageHandler(c *gin.Context) {
	var req dto.ScheduledMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	msg, err := h.scheduleService.Create(c.Request.Context(),
		req.GroupID, req.Message, req.ImageBase64, req.SendAt, req.IsRecurring)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while scheduling message."})
		return
	}
	c.JSON(http.StatusCreated, toScheduledMessageResponse(*msg))
}

// listScheduledMessagesHandler
// @Summary      Lists scheduled group messages
// @Tags         Scheduled Messages
// @Produce      json
// @Success      200  {array}  dto.ScheduledMessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /scheduled-messages [get]
func (h *Handler) listScheduledMessagesHandler(c *gin.Context) {
	messages, err := h.scheduleService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching scheduled messages."})
		return
	}

	responses := make([]dto.ScheduledMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = toScheduledMessageResponse(msg)
	}
	c.JSON(http.StatusOK, responses)
}

// deleteScheduledMessageHandler
// @Summary      Deletes a scheduled group message
// @Tags         Scheduled Messages
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /scheduled-messages/{id} [delete]
func (h *Handler) deleteScheduledMessageHandler(c *gin.Context) {
	err := h.scheduleService.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "scheduled message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while deleting scheduled message."})
		return
	}
	c.Status(http.StatusNoContent)
}

func toScheduledMessageResponse(msg domain.ScheduledGroupMessage) dto.ScheduledMessageResponse {
	return dto.ScheduledMessageResponse{
		ID:          msg.ID,
		GroupID:     msg.GroupID,
		Message:     msg.Message,
		HasImage:    msg.ImageBase64 != "",
		SendAt:      msg.SendAt,
		IsRecurring: msg.IsRecurring,
		Status:      string(msg.Status),
		CreatedAt:   msg.CreatedAt,
	}
}
