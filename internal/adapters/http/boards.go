package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkeye/Canvas/internal/board"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type boardHandlers struct {
	store board.Store
}

func registerBoardRoutes(api *gin.RouterGroup, store board.Store) {
	h := &boardHandlers{store: store}
	api.POST("/boards", h.create)
	api.GET("/boards/user/:userId", h.listByUser)
	api.GET("/boards/:id", h.get)
	api.PUT("/boards/update", h.update)
	api.DELETE("/boards/:id", h.delete)
	api.PATCH("/boards/share/:id", h.share)
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.Is(err, board.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database connection required",
			"message": "Board storage is unavailable, please try again later",
		})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("board store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *boardHandlers) create(c *gin.Context) {
	var req struct {
		UserID string          `json:"userId"`
		Title  string          `json:"title"`
		Data   json.RawMessage `json:"data"`
		Notes  json.RawMessage `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(clientTokenKey)
	}
	b, err := h.store.Create(c.Request.Context(), board.Board{
		UserID: req.UserID,
		Title:  req.Title,
		Data:   nullToNil(req.Data),
		Notes:  nullToNil(req.Notes),
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *boardHandlers) listByUser(c *gin.Context) {
	boards, err := h.store.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *boardHandlers) get(c *gin.Context) {
	b, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *boardHandlers) update(c *gin.Context) {
	var req struct {
		BoardID string          `json:"boardId"`
		Title   *string         `json:"title"`
		Data    json.RawMessage `json:"data"`
		Notes   json.RawMessage `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BoardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing board ID"})
		return
	}
	b, err := h.store.Update(c.Request.Context(), req.BoardID, board.Update{
		Title: req.Title,
		Data:  nullToNil(req.Data),
		Notes: nullToNil(req.Notes),
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board updated successfully", "board": b})
}

func (h *boardHandlers) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (h *boardHandlers) share(c *gin.Context) {
	var req struct {
		UserIDToShare string `json:"userIdToShare"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserIDToShare == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userIdToShare"})
		return
	}
	shared, err := h.store.Share(c.Request.Context(), c.Param("id"), req.UserIDToShare)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if !shared {
		c.JSON(http.StatusOK, gin.H{"message": "Board already shared"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board shared successfully"})
}

// nullToNil treats an explicit JSON null like an absent field.
func nullToNil(raw json.RawMessage) json.RawMessage {
	if string(raw) == "null" {
		return nil
	}
	return raw
}
