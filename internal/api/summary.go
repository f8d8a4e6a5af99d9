package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"auditoria/internal/excel"
	"auditoria/internal/summary"
)

// WeeklySummary painel semanal por loja
// GET /api/summary/weekly?date=&loja=&search=
func (h *Handler) WeeklySummary(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data inválida, use YYYY-MM-DD"})
		return
	}

	items, err := h.store.ListHistory("", h.cfg.Loja.HistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := summary.BuildWeekly(items, ref, summary.Options{
		Loja:   c.Query("loja"),
		Search: c.Query("search"),
	})
	c.JSON(http.StatusOK, result)
}

// MonthlySummary painel mensal por loja
// GET /api/summary/monthly?date=&loja=&search=
func (h *Handler) MonthlySummary(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data inválida, use YYYY-MM-DD"})
		return
	}

	items, err := h.store.ListHistory("", h.cfg.Loja.HistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := summary.BuildMonthly(items, ref, summary.Options{
		Loja:   c.Query("loja"),
		Search: c.Query("search"),
	})
	c.JSON(http.StatusOK, result)
}

// ExportWeeklySummary consolida o painel semanal em um .xlsx
// GET /api/summary/weekly/export?date=&loja=&search=
func (h *Handler) ExportWeeklySummary(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data inválida, use YYYY-MM-DD"})
		return
	}

	items, err := h.store.ListHistory("", h.cfg.Loja.HistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := summary.BuildWeekly(items, ref, summary.Options{
		Loja:   c.Query("loja"),
		Search: c.Query("search"),
	})

	f, err := excel.ExportWeeklySummary(result.Stores)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao gerar o arquivo"})
		return
	}

	fileName := fmt.Sprintf("Resumo_Semanal_Consolidado_%s.xlsx", ref.Format("02-01-2006"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
