package parser

import (
	"fmt"
	"strings"

	"auditoria/internal/model"
)

// ParseAnalysis converte a planilha de análise geral em linhas canônicas.
// A dimensão "desatualizado" é uma propriedade do relatório, não da linha:
// se a coluna não existe no cabeçalho, nenhuma linha carrega o campo.
func ParseAnalysis(rows []Row) []model.AuditRow {
	rows = NormalizeRows(rows)
	out := make([]model.AuditRow, 0, len(rows))

	hasOutdatedColumn := false
	if len(rows) > 0 {
		for k := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(k)) {
			case "desatualizado", "desatualizados":
				hasOutdatedColumn = true
			}
		}
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		rawDescription, _ := row.Get("Descrição")
		if strings.Contains(rawDescription, SentinelRow) {
			continue
		}

		corridor := SanitizeName(rawDescription)

		skuRaw, _ := row.Get("Qtde Total", "QTDE TOTAL")
		sku := parseCount(skuRaw)
		if sku == 0 {
			continue
		}

		// Células como "12 (35%)": só a parte antes do parêntese conta
		notReadRaw, _ := row.Get("Não lidos", "Não Lidos", "não lidos")
		if idx := strings.Index(notReadRaw, "("); idx >= 0 {
			notReadRaw = strings.TrimSpace(notReadRaw[:idx])
		}
		notRead := parseCount(notReadRaw)

		var outdated *int
		if hasOutdatedColumn {
			raw, _ := row.Get("Desatualizado", "Desatualizados", "desatualizados")
			n := parseCount(raw)
			outdated = &n
		}

		if !row.Has("Descrição") && !row.Has("Qtde Total") {
			continue
		}

		out = append(out, model.AuditRow{
			ID:                fmt.Sprintf("row-analysis-%d", i),
			Corridor:          corridor,
			SKU:               sku,
			NotRead:           notRead,
			Outdated:          outdated,
			PartialPercentage: partialPercentage(notRead, sku),
		})
	}

	return out
}
