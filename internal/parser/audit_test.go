package parser

import (
	"math"
	"testing"
)

func auditSheet(dataRows ...Row) []Row {
	// índice 0 é sempre a linha de banner do relatório
	banner := Row{"Auditado em": "Relatório de Auditoria"}
	return append([]Row{banner}, dataRows...)
}

func TestParseAudit_CanonicalRow(t *testing.T) {
	t.Parallel()

	rows := ParseAudit(auditSheet(Row{
		"Auditado em":           "204 - CO02 - CO02",
		"Itens com Estoque":     "100",
		"Não Lidas com Estoque": "5",
	}))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Corridor != "CO02" || r.SKU != 100 || r.NotRead != 5 {
		t.Fatalf("unexpected row: %+v", r)
	}
	if math.Abs(r.PartialPercentage-5) > 1e-9 {
		t.Fatalf("partial want=5 got=%v", r.PartialPercentage)
	}
}

func TestParseAudit_RupturaFallbackColumn(t *testing.T) {
	t.Parallel()

	rows := ParseAudit(auditSheet(Row{
		"Auditado em":       "F01 - F01",
		"Itens com Estoque": "50",
		"Ruptura 1ª":        "10",
	}))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].NotRead != 10 {
		t.Fatalf("notRead want=10 got=%d", rows[0].NotRead)
	}
}

func TestParseAudit_SkipsSentinelAndZeroSKU(t *testing.T) {
	t.Parallel()

	rows := ParseAudit(auditSheet(
		Row{"Auditado em": "204 - Av Recife - PE", "Itens com Estoque": "30"},
		Row{"Auditado em": "X01", "Itens com Estoque": "0"},
		Row{"Rodapé": "Total geral"},
		Row{"Auditado em": "A02", "Itens com Estoque": "20", "Não Lidas com Estoque": "1"},
	))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Corridor != "A02" {
		t.Fatalf("corridor want=A02 got=%q", rows[0].Corridor)
	}
}

func TestParseAudit_MalformedNumbersCoerceToZero(t *testing.T) {
	t.Parallel()

	rows := ParseAudit(auditSheet(Row{
		"Auditado em":           "B01",
		"Itens com Estoque":     "40",
		"Não Lidas com Estoque": "n/a",
	}))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].NotRead != 0 || rows[0].PartialPercentage != 0 {
		t.Fatalf("unexpected coercion: %+v", rows[0])
	}
}

func TestParseAudit_BannerRowDiscarded(t *testing.T) {
	t.Parallel()

	// Mesmo um banner com cara de dado válido é descartado
	rows := ParseAudit([]Row{
		{"Auditado em": "Z99", "Itens com Estoque": "10", "Não Lidas com Estoque": "1"},
	})
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}
