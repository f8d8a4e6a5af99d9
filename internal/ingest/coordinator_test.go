package ingest

import (
	"testing"
	"time"

	"auditoria/internal/model"
)

func TestExtractDateFromFileName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"auditoria_04-06-2025.xlsx":  "2025-06-04",
		"relatorio 12_01_2024.xlsx":  "2024-01-12",
		"ruptura-31-12-2025-v2.xlsx": "2025-12-31",
		"auditoria.xlsx":             "",
		"semana-4-06-2025.xlsx":      "",
	}
	for in, want := range cases {
		if got := ExtractDateFromFileName(in); got != want {
			t.Fatalf("ExtractDateFromFileName(%q) want=%q got=%q", in, want, got)
		}
	}
}

func fixedCoordinator(at time.Time) *Coordinator {
	return &Coordinator{now: func() time.Time { return at }}
}

func TestBuildItem_CeilOnlyForRupture(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 4, 10, 0, 0, 0, time.Local)
	c := fixedCoordinator(now)

	data := []model.AuditRow{
		{ID: "row-0", Corridor: "CO01", SKU: 300, NotRead: 10},
	}

	audit := c.buildItem(data, nil, Options{ReportType: model.ReportAudit, Loja: "204"}, nil)
	if audit.Stats.GeneralPartial <= 3.3 || audit.Stats.GeneralPartial >= 3.4 {
		t.Fatalf("auditoria mantém o percentual exato, got %v", audit.Stats.GeneralPartial)
	}

	rupture := c.buildItem(data, nil, Options{ReportType: model.ReportRupture, Loja: "204"}, nil)
	if rupture.Stats.GeneralPartial != 4 {
		t.Fatalf("ruptura arredonda para cima, want=4 got=%v", rupture.Stats.GeneralPartial)
	}
}

func TestBuildItem_Totals(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 4, 10, 0, 0, 0, time.Local)
	c := fixedCoordinator(now)

	five, zero := 5, 0
	data := []model.AuditRow{
		{SKU: 100, NotRead: 3, Outdated: &five},
		{SKU: 50, NotRead: 2, Outdated: &zero},
	}
	item := c.buildItem(data, nil, Options{ReportType: model.ReportAnalysis, Loja: "204"}, nil)

	if item.Stats.TotalSKU != 150 || item.Stats.TotalNotRead != 5 {
		t.Fatalf("totais inesperados: %+v", item.Stats)
	}
	if item.Stats.TotalOutdated == nil || *item.Stats.TotalOutdated != 5 {
		t.Fatalf("totalOutdated want=5 got=%v", item.Stats.TotalOutdated)
	}

	// Sem coluna de desatualizados o total fica ausente, não zero
	plain := c.buildItem([]model.AuditRow{{SKU: 10, NotRead: 1}}, nil,
		Options{ReportType: model.ReportAudit, Loja: "204"}, nil)
	if plain.Stats.TotalOutdated != nil {
		t.Fatalf("totalOutdated deveria ser ausente: %v", *plain.Stats.TotalOutdated)
	}

	// Planilha vazia não divide por zero
	empty := c.buildItem(nil, nil, Options{ReportType: model.ReportAudit, Loja: "204"}, nil)
	if empty.Stats.GeneralPartial != 0 {
		t.Fatalf("percentual de planilha vazia want=0 got=%v", empty.Stats.GeneralPartial)
	}
}

func TestBuildItem_ClassOverrideSKU(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 4, 10, 0, 0, 0, time.Local)
	c := fixedCoordinator(now)

	data := []model.AuditRow{
		{Corridor: "BEBIDAS", SKU: 4, NotRead: 4, PartialPercentage: 100},
	}
	denominator := 800
	item := c.buildItem(data, &model.ClassResult{}, Options{ReportType: model.ReportClass, Loja: "204"}, &denominator)

	if item.Stats.TotalSKU != 800 {
		t.Fatalf("denominador want=800 got=%d", item.Stats.TotalSKU)
	}
	if item.Stats.TotalNotRead != 4 {
		t.Fatalf("totalNotRead want=4 got=%d", item.Stats.TotalNotRead)
	}
	if item.Stats.GeneralPartial != 0.5 {
		t.Fatalf("percentual want=0.5 got=%v", item.Stats.GeneralPartial)
	}
	if item.CategoryStats == nil {
		t.Fatal("estatísticas de categoria devem acompanhar o item de classe")
	}
}

func TestEnsureCustomDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 4, 10, 0, 0, 0, time.Local)
	c := fixedCoordinator(now)

	// Data informada vence a do nome do arquivo
	got := c.ensureCustomDate(Options{CustomDate: "2025-01-15", FileName: "auditoria_04-06-2025.xlsx"})
	if got != "2025-01-15" {
		t.Fatalf("want=2025-01-15 got=%q", got)
	}

	got = c.ensureCustomDate(Options{FileName: "auditoria_04-06-2025.xlsx"})
	if got != "2025-06-04" {
		t.Fatalf("want=2025-06-04 got=%q", got)
	}

	got = c.ensureCustomDate(Options{FileName: "auditoria.xlsx"})
	if got != "2025-06-04" {
		t.Fatalf("fallback para hoje, want=2025-06-04 got=%q", got)
	}
}
