package parser

import (
	"fmt"
	"strings"

	"auditoria/internal/model"
)

// SentinelRow linha de placeholder do sistema de origem, sempre descartada
const SentinelRow = "204 - Av Recife - PE"

// ParseAudit converte a planilha de auditoria parcial em linhas canônicas.
// A primeira linha de dados é sempre um banner e é descartada.
func ParseAudit(rows []Row) []model.AuditRow {
	rows = NormalizeRows(rows)
	out := make([]model.AuditRow, 0, len(rows))

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if containsSentinel(row) {
			continue
		}

		rawCorridor, _ := row.Get("Auditado em")
		corridor := SanitizeName(rawCorridor)

		skuRaw, _ := row.Get("Itens com Estoque")
		sku := parseCount(skuRaw)

		notReadRaw, ok := row.Get("Não Lidas com Estoque")
		if !ok {
			notReadRaw, _ = row.Get("Ruptura 1ª")
		}
		notRead := parseCount(notReadRaw)

		if sku == 0 {
			continue
		}
		if !row.Has("Auditado em") && !row.Has("Itens com Estoque") {
			continue
		}

		out = append(out, model.AuditRow{
			ID:                fmt.Sprintf("row-%d", i),
			Corridor:          corridor,
			SKU:               sku,
			NotRead:           notRead,
			PartialPercentage: partialPercentage(notRead, sku),
		})
	}

	return out
}

func containsSentinel(row Row) bool {
	for _, v := range row.Values() {
		if v == SentinelRow {
			return true
		}
	}
	return false
}

// partialPercentage sempre recalculada a partir de notRead/sku,
// nunca lida da planilha
func partialPercentage(notRead, sku int) float64 {
	if sku <= 0 {
		return 0
	}
	return float64(notRead) / float64(sku) * 100
}

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
