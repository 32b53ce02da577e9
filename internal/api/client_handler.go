package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api/dto"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/services"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// createClientHandler
// @Summary      Creates a new client
// @Description  Creates a client with all rule watermarks seeded to now, so no automation fires for a brand-new record.
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clients [post]
func (h *Handler) createClientHandler(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), clientInput(req))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while creating client."})
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(*client, time.Now()))
}

// listClientsHandler
// @Summary      Lists all clients
// @Tags         Clients
// @Produce      json
// @Success      200  {object}  dto.ClientsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clients [get]
func (h *Handler) listClientsHandler(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching clients."})
		return
	}

	now := time.Now()
	responses := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = toClientResponse(client, now)
	}
	c.JSON(http.StatusOK, dto.ClientsResponse{Clients: responses, Total: len(responses)})
}

// updateClientHandler
// @Summary      Updates a client
// @Description  Updates user-editable fields. Watermarks are never touched here; a new due date re-arms rules through the recomputed threshold.
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id} [put]
func (h *Handler) updateClientHandler(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), c.Param("id"), clientInput(req))
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while updating client."})
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*client, time.Now()))
}

// deleteClientHandler
// @Summary      Deletes a client
// @Tags         Clients
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *Handler) deleteClientHandler(c *gin.Context) {
	err := h.clientService.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while deleting client."})
		return
	}
	c.Status(http.StatusNoContent)
}

func clientInput(req dto.ClientRequest) services.NewClientInput {
	var method *domain.PaymentMethod
	if req.PaymentMethod != nil {
		m := domain.PaymentMethod(*req.PaymentMethod)
		method = &m
	}
	return services.NewClientInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Emails:        req.Emails,
		Subscription:  req.Subscription,
		PaymentMethod: method,
		AmountPaid:    req.AmountPaid,
		Quantity:      req.Quantity,
		DueDate:       req.DueDate,
	}
}

func toClientResponse(client domain.Client, now time.Time) dto.ClientResponse {
	var method *string
	if client.PaymentMethod != nil {
		m := string(*client.PaymentMethod)
		method = &m
	}
	return dto.ClientResponse{
		ID:            client.ID,
		Name:          client.Name,
		Phone:         client.Phone,
		Emails:        client.Emails,
		Subscription:  client.Subscription,
		PaymentMethod: method,
		AmountPaid:    client.AmountPaid,
		Quantity:      client.Quantity,
		DueDate:       client.DueDate,
		CreatedAt:     client.CreatedAt,
		Status:        string(domain.Classify(client.DueDate, now)),
	}
}
