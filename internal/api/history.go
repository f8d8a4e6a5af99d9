package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auditoria/internal/store"
)

// ListHistory metadados do histórico, mais recentes primeiro
// GET /api/history?loja=
func (h *Handler) ListHistory(c *gin.Context) {
	loja := c.Query("loja")
	items, err := h.store.ListHistory(loja, h.cfg.Loja.HistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetHistoryItem relatório completo com payloads
// GET /api/history/:id
func (h *Handler) GetHistoryItem(c *gin.Context) {
	item, err := h.store.GetHistoryItem(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "relatório não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateHistoryDate edita a data explícita de um relatório
// PATCH /api/history/:id/date {"date": "YYYY-MM-DD"}
func (h *Handler) UpdateHistoryDate(c *gin.Context) {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido"})
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data inválida, use YYYY-MM-DD"})
		return
	}

	err := h.store.UpdateCustomDate(c.Param("id"), body.Date)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "relatório não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteHistoryItem remove um relatório
// DELETE /api/history/:id
func (h *Handler) DeleteHistoryItem(c *gin.Context) {
	err := h.store.DeleteHistoryItem(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "relatório não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteAllHistory limpa o histórico da loja informada (ou todo o banco)
// DELETE /api/history?loja=
func (h *Handler) DeleteAllHistory(c *gin.Context) {
	if err := h.store.DeleteAllHistory(c.Query("loja")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
