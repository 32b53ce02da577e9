package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api/dto"
)

// listNotificationsHandler
// @Summary      Lists recent send outcomes
// @Description  Paginated feed of automation and scheduled dispatch results, newest first.
// @Tags         Notifications
// @Param        page  query  int false "page number"
// @Param        pageSize query  int  false "size of page"
// @Produce      json
// @Success      200  {object}  dto.NotificationsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /notifications [get]
func (h *Handler) listNotificationsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page size"})
		return
	}
	if pageSize > 100 {
		pageSize = 100
	}

	notifications, total, err := h.feed.Recent(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching notifications."})
		return
	}
	c.JSON(http.StatusOK, dto.NotificationsResponse{Notifications: notifications, Total: total})
}

// toggleJobHandler
// @Summary      Starts or stops a polling loop
// @Description  Toggles the named polling loop (automation or scheduler) based on its current state.
// @Tags         Jobs
// @Produce      json
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /jobs/{name}/toggle [put]
func (h *Handler) toggleJobHandler(c *gin.Context) {
	manager, ok := h.jobs[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}

	var err error
	var response dto.JobResponse
	if manager.IsRunning() {
		err = manager.Stop()
		response = dto.JobResponse{Job: manager.Name(), Status: "stopped"}
	} else {
		err = manager.Start(h.appCtx)
		response = dto.JobResponse{Job: manager.Name(), Status: "started"}
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// gatewayStatusHandler
// @Summary      Gets the messaging gateway session status
// @Tags         Gateway
// @Produce      json
// @Success      200  {object}  gateway.ConnectionStatus
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /gateway/status [get]
func (h *Handler) gatewayStatusHandler(c *gin.Context) {
	status, err := h.gateway.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
