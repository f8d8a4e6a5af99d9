package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"auditoria/internal/model"
)

func TestTruncatePercentage(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		3.3333:  "3.33%",
		3.3399:  "3.33%", // trunca, não arredonda
		0:       "0.00%",
		100:     "100.00%",
		66.6666: "66.66%",
	}
	for in, want := range cases {
		if got := TruncatePercentage(in); got != want {
			t.Fatalf("TruncatePercentage(%v) want=%q got=%q", in, want, got)
		}
	}
}

func sheetBytes(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		addr, _ := excelize.JoinCellName("A", i+1)
		if err := f.SetSheetRow("Sheet1", addr, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	r := sheetBytes(t, [][]interface{}{
		{"Auditado em", "Itens com Estoque", ""},
		{"204 - CO02", "100", "ignorado"},
		{"204 - CO03", ""},
	})

	rows, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got, _ := rows[0].Get("Auditado em"); got != "204 - CO02" {
		t.Fatalf("célula inesperada: %q", got)
	}
	if got, _ := rows[0].Get("Itens com Estoque"); got != "100" {
		t.Fatalf("célula inesperada: %q", got)
	}
	// Cabeçalho vazio não vira chave, célula vazia não entra no mapa
	if len(rows[0]) != 2 {
		t.Fatalf("linha deveria ter 2 chaves: %v", rows[0])
	}
	if rows[1].Has("Itens com Estoque") {
		t.Fatalf("célula vazia não deveria existir: %v", rows[1])
	}
}

func TestDecode_HeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := Decode(sheetBytes(t, [][]interface{}{{"Auditado em"}}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}

func TestDecode_NotASpreadsheet(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("isto não é uma planilha"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), ErrFileRead.Error()) {
		t.Fatalf("erro deveria embrulhar ErrFileRead: %v", err)
	}
}

func TestExportWeeklySummary(t *testing.T) {
	t.Parallel()

	seven := 7
	monday := &model.HistoryItem{
		ReportType: model.ReportAudit,
		Stats: model.ReportStats{
			TotalSKU:       300,
			TotalNotRead:   10,
			TotalOutdated:  &seven,
			GeneralPartial: 3.3333,
		},
	}
	tuesday := &model.HistoryItem{
		ReportType: model.ReportAnalysis,
		Stats:      model.ReportStats{TotalSKU: 50, TotalNotRead: 5, GeneralPartial: 10},
	}
	stores := []model.StoreWeekSummary{
		{Loja: "204", Monday: monday, Tuesday: tuesday},
		{Loja: "305", Monday: monday},
	}

	f, err := ExportWeeklySummary(stores)
	if err != nil {
		t.Fatalf("ExportWeeklySummary: %v", err)
	}
	defer f.Close()

	list := f.GetSheetList()
	if len(list) != 2 {
		t.Fatalf("expected abas Segunda e Terça, got %v", list)
	}

	// Segunda tem coluna de desatualizados entre "Não lidos" e o resultado
	if got, _ := f.GetCellValue("Segunda", "D1"); got != "Desatualizado" {
		t.Fatalf("D1 want=Desatualizado got=%q", got)
	}
	if got, _ := f.GetCellValue("Segunda", "E2"); got != "3.33%" {
		t.Fatalf("E2 want=3.33%% got=%q", got)
	}
	if got, _ := f.GetCellValue("Segunda", "A3"); got != "305" {
		t.Fatalf("A3 want=305 got=%q", got)
	}

	// Terça não tem a coluna: o resultado fica na coluna D
	if got, _ := f.GetCellValue("Terça", "D1"); got != "Resultado%" {
		t.Fatalf("Terça D1 want=Resultado%% got=%q", got)
	}
	if got, _ := f.GetCellValue("Terça", "D2"); got != "10.00%" {
		t.Fatalf("Terça D2 want=10.00%% got=%q", got)
	}
}

func TestExportWeeklySummary_Empty(t *testing.T) {
	t.Parallel()

	if _, err := ExportWeeklySummary(nil); err == nil {
		t.Fatal("expected error para painel vazio")
	}
}
