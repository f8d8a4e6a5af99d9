package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"auditoria/internal/excel"
	"auditoria/internal/ingest"
	"auditoria/internal/model"
)

// Import importa uma planilha de relatório
// POST /api/import (multipart: file, type, loja?, date?, sku?)
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não encontrado no formulário"})
		return
	}

	reportType := model.ReportType(c.PostForm("type"))
	if !reportType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipo de relatório inválido"})
		return
	}

	loja := c.DefaultPostForm("loja", h.cfg.Loja.Default)

	opts := ingest.Options{
		FileName:   fileHeader.Filename,
		ReportType: reportType,
		Loja:       loja,
		CustomDate: c.PostForm("date"),
	}

	// SKU manual: denominador para relatório de classe sem auditoria prévia
	if raw, ok := c.GetPostForm("sku"); ok {
		sku, err := strconv.Atoi(raw)
		if err != nil || sku < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "SKU inválido"})
			return
		}
		opts.ManualSKU = &sku
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao abrir o arquivo enviado"})
		return
	}
	defer f.Close()

	item, err := h.coordinator.Import(f, opts)
	switch {
	case errors.Is(err, ingest.ErrNeedManualSKU):
		c.JSON(http.StatusConflict, gin.H{
			"error":             "nenhuma auditoria anterior com SKU; informe o valor manualmente",
			"requiresManualSku": true,
		})
		return
	case errors.Is(err, excel.ErrFileRead):
		c.JSON(http.StatusBadRequest, gin.H{"error": "erro ao ler o arquivo"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}
