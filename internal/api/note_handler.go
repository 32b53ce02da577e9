package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api/dto"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// createNoteHandler
// @Summary      Creates a note
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.NoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /notes [post]
func (h *Handler) createNoteHandler(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while creating note."})
		return
	}
	c.JSON(http.StatusCreated, toNoteResponse(*note))
}

// listNotesHandler
// @Summary      Lists notes in board order
// @Tags         Notes
// @Produce      json
// @Success      200  {array}  dto.NoteResponse
// @Router       /notes [get]
func (h *Handler) listNotesHandler(c *gin.Context) {
	notes, err := h.noteService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while fetching notes."})
		return
	}

	responses := make([]dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	c.JSON(http.StatusOK, responses)
}

// updateNoteHandler
// @Summary      Updates a note's content
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notes/{id} [put]
func (h *Handler) updateNoteHandler(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	err := h.noteService.Update(c.Request.Context(), c.Param("id"), req.Content)
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while updating note."})
		return
	}
	c.Status(http.StatusNoContent)
}

// moveNoteHandler
// @Summary      Moves a note to a new column/position
// @Description  Assigns a fresh fractional sort key derived from the new neighbours; no other note is rewritten.
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notes/{id}/position [put]
func (h *Handler) moveNoteHandler(c *gin.Context) {
	var req dto.MoveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request: " + err.Error()})
		return
	}

	err := h.noteService.Move(c.Request.Context(), c.Param("id"), domain.NoteStatus(req.Status), req.Index)
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while moving note."})
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteNoteHandler
// @Summary      Deletes a note
// @Tags         Notes
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notes/{id} [delete]
func (h *Handler) deleteNoteHandler(c *gin.Context) {
	err := h.noteService.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred while deleting note."})
		return
	}
	c.Status(http.StatusNoContent)
}

func toNoteResponse(note domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		Content:   note.Content,
		Status:    string(note.Status),
		SortKey:   note.SortKey,
		CreatedAt: note.CreatedAt,
	}
}
