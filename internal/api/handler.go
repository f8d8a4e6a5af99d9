// Package api expõe a API HTTP do painel: importação de planilhas,
// histórico e resumos semanais/mensais.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"auditoria/internal/config"
	"auditoria/internal/ingest"
	"auditoria/internal/store"
)

// Handler processador das rotas da API
type Handler struct {
	store       *store.Store
	coordinator *ingest.Coordinator
	cfg         *config.AppConfig
}

// NewHandler cria o handler da API
func NewHandler(s *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:       s,
		coordinator: ingest.NewCoordinator(s),
		cfg:         cfg,
	}
}

// RegisterRoutes registra as rotas no grupo /api
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/import", h.Import)

	api.GET("/history", h.ListHistory)
	api.GET("/history/:id", h.GetHistoryItem)
	api.PATCH("/history/:id/date", h.UpdateHistoryDate)
	api.DELETE("/history/:id", h.DeleteHistoryItem)
	api.DELETE("/history", h.DeleteAllHistory)

	api.GET("/summary/weekly", h.WeeklySummary)
	api.GET("/summary/monthly", h.MonthlySummary)
	api.GET("/summary/weekly/export", h.ExportWeeklySummary)
}

// refDate data de referência dos resumos: query "date" (YYYY-MM-DD) ou hoje
func refDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	// Meio-dia evita surpresas de fuso na virada do dia
	return d.Add(12 * time.Hour), true
}
