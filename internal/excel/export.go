package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"auditoria/internal/model"
)

// dayConfig uma aba por dia útil do painel; segunda e quinta carregam a
// coluna de desatualizados
var dayConfig = []struct {
	label       string
	hasOutdated bool
	item        func(s model.StoreWeekSummary) *model.HistoryItem
}{
	{"Segunda", true, func(s model.StoreWeekSummary) *model.HistoryItem { return s.Monday }},
	{"Terça", false, func(s model.StoreWeekSummary) *model.HistoryItem { return s.Tuesday }},
	{"Quarta", false, func(s model.StoreWeekSummary) *model.HistoryItem { return s.Wednesday }},
	{"Quinta", true, func(s model.StoreWeekSummary) *model.HistoryItem { return s.Thursday }},
}

// TruncatePercentage formata truncando em duas casas, sem arredondar
func TruncatePercentage(value float64) string {
	truncated := math.Floor(value*100) / 100
	return fmt.Sprintf("%.2f%%", truncated)
}

// ExportWeeklySummary monta o consolidado semanal: uma aba por dia com uma
// linha por loja que tenha relatório naquele dia. Dias sem nenhuma loja não
// geram aba.
func ExportWeeklySummary(stores []model.StoreWeekSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	created := 0

	for _, day := range dayConfig {
		var rows []model.StoreWeekSummary
		for _, s := range stores {
			if day.item(s) != nil {
				rows = append(rows, s)
			}
		}
		if len(rows) == 0 {
			continue
		}

		if _, err := f.NewSheet(day.label); err != nil {
			return nil, fmt.Errorf("falha ao criar aba %s: %w", day.label, err)
		}
		created++

		header := []interface{}{"Loja", "SKU", "Não lidos"}
		if day.hasOutdated {
			header = append(header, "Desatualizado")
		}
		header = append(header, "Resultado%")
		if err := f.SetSheetRow(day.label, "A1", &header); err != nil {
			return nil, err
		}

		for i, s := range rows {
			item := day.item(s)
			cells := []interface{}{s.Loja, item.Stats.TotalSKU, item.Stats.TotalNotRead}
			if day.hasOutdated {
				cells = append(cells, outdatedOf(item))
			}
			cells = append(cells, TruncatePercentage(item.Stats.GeneralPartial))
			addr := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(day.label, addr, &cells); err != nil {
				return nil, err
			}
		}

		f.SetColWidth(day.label, "A", "A", 10)
		f.SetColWidth(day.label, "B", "C", 12)
		lastCol := "D"
		if day.hasOutdated {
			f.SetColWidth(day.label, "D", "D", 15)
			lastCol = "E"
		}
		f.SetColWidth(day.label, lastCol, lastCol, 15)
	}

	if created == 0 {
		return nil, fmt.Errorf("nenhum dado para exportar")
	}
	f.DeleteSheet("Sheet1")
	return f, nil
}

func outdatedOf(item *model.HistoryItem) int {
	if item.Stats.TotalOutdated != nil {
		return *item.Stats.TotalOutdated
	}
	if item.CategoryStats != nil {
		return item.CategoryStats.Desatualizado
	}
	return 0
}
