package api

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group("/api")
	{
		clients := apiRoutes.Group("/clients")
		{
			clients.POST("/", h.createClientHandler)
			clients.GET("/", h.listClientsHandler)
			clients.PUT("/:id", h.updateClientHandler)
			clients.DELETE("/:id", h.deleteClientHandler)
		}

		apiRoutes.GET("/automation-config", h.getAutomationConfigHandler)
		apiRoutes.PUT("/automation-config", h.saveAutomationConfigHandler)

		scheduled := apiRoutes.Group("/scheduled-messages")
		{
			scheduled.POST("/", h.createScheduledMessageHandler)
			scheduled.GET("/", h.listScheduledMessagesHandler)
			scheduled.DELETE("/:id", h.deleteScheduledMessageHandler)
		}

		notes := apiRoutes.Group("/notes")
		{
			notes.POST("/", h.createNoteHandler)
			notes.GET("/", h.listNotesHandler)
			notes.PUT("/:id", h.updateNoteHandler)
			notes.PUT("/:id/position", h.moveNoteHandler)
			notes.DELETE("/:id", h.deleteNoteHandler)
		}

		apiRoutes.GET("/notifications", h.listNotificationsHandler)
		apiRoutes.PUT("/jobs/:name/toggle", h.toggleJobHandler)
		apiRoutes.GET("/gateway/status", h.gatewayStatusHandler)
	}

	return router
}
