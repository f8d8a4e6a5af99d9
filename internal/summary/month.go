package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"auditoria/internal/model"
)

// WeekInfo semana de auditoria dentro de um mês
type WeekInfo struct {
	Label string
	Start time.Time // segunda-feira
	End   time.Time // quinta-feira
}

// WeeksOfMonth semanas de auditoria do mês de referência. A semana 1 começa
// na primeira segunda-feira do mês (não na semana civil do dia 1); cada
// semana seguinte começa 7 dias depois, enquanto a segunda ainda cair no mês.
func WeeksOfMonth(ref time.Time) []WeekInfo {
	year, month, _ := ref.Date()
	current := time.Date(year, month, 1, 12, 0, 0, 0, ref.Location())
	for current.Weekday() != time.Monday {
		current = current.AddDate(0, 0, 1)
	}

	var weeks []WeekInfo
	count := 1
	for current.Month() == month && current.Year() == year {
		weeks = append(weeks, WeekInfo{
			Label: fmt.Sprintf("Semana %d", count),
			Start: current,
			End:   current.AddDate(0, 0, 3),
		})
		current = current.AddDate(0, 0, 7)
		count++
	}
	return weeks
}

// weekWindow janela de histórico da semana: domingo anterior à segunda
// até o sábado seguinte
func weekWindow(w WeekInfo) model.WeekRange {
	return model.WeekRange{
		Sunday:   w.Start.AddDate(0, 0, -1),
		Saturday: w.Start.AddDate(0, 0, 5),
	}
}

type weekStoreData struct {
	monday   *model.HistoryItem
	thursday *model.HistoryItem
	rupture  *model.HistoryItem
}

// BuildMonthly reconstrói o painel mensal: para cada semana de auditoria do
// mês, roda a consolidação segunda/quinta e a busca de ruptura na janela
// própria da semana. Médias mensais ignoram semanas sem valor; loja sem
// nenhuma semana qualificada reporta a média como ausente, não zero.
func BuildMonthly(history []model.HistoryItem, ref time.Time, opts Options) []model.MonthlyStoreSummary {
	monthWeeks := WeeksOfMonth(ref)
	stores := map[string]*model.MonthlyStoreSummary{}

	emptyWeeks := func() []model.WeekSlot {
		slots := make([]model.WeekSlot, 0, len(monthWeeks))
		for _, w := range monthWeeks {
			slots = append(slots, model.WeekSlot{Label: w.Label, Start: w.Start, End: w.End})
		}
		return slots
	}

	for wi, weekInfo := range monthWeeks {
		window := weekWindow(weekInfo)

		perStore := map[string]*weekStoreData{}
		dataFor := func(loja string) *weekStoreData {
			d, ok := perStore[loja]
			if !ok {
				d = &weekStoreData{}
				perStore[loja] = d
			}
			return d
		}

		relevant := make([]model.HistoryItem, 0)
		for _, item := range history {
			if window.Contains(item.EffectiveDate()) {
				relevant = append(relevant, item)
			}
		}

		for i := range relevant {
			item := &relevant[i]
			d := dataFor(item.Loja)

			if item.ReportType == model.ReportRupture || item.ReportType == model.ReportFinalRupture {
				if d.rupture == nil || item.Timestamp.After(d.rupture.Timestamp) {
					d.rupture = item
				}
				continue
			}
			if item.ReportType != model.ReportAudit && item.ReportType != model.ReportAnalysis {
				continue
			}

			// No mensal a consolidação é simplificada: mais recente vence,
			// só segunda e quinta interessam
			switch item.EffectiveDate().Weekday() {
			case time.Monday:
				if d.monday == nil || item.Timestamp.After(d.monday.Timestamp) {
					d.monday = item
				}
			case time.Thursday:
				if d.thursday == nil || item.Timestamp.After(d.thursday.Timestamp) {
					d.thursday = item
				}
			}
		}

		for loja, d := range perStore {
			s, ok := stores[loja]
			if !ok {
				s = &model.MonthlyStoreSummary{Loja: loja, Weeks: emptyWeeks()}
				stores[loja] = s
			}
			slot := &s.Weeks[wi]
			if d.monday != nil && d.thursday != nil {
				slot.EtiquetaFinal = etiquetaFinal(d.monday, d.thursday)
			}
			if d.rupture != nil {
				slot.RupturaFinal = d.rupture
			}
		}
	}

	results := make([]model.MonthlyStoreSummary, 0, len(stores))
	for _, s := range stores {
		results = append(results, *s)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Loja < results[j].Loja })
	results = filterMonthly(results, opts)

	for i := range results {
		results[i].MonthlyAverageEtiqueta = averageEtiqueta(results[i].Weeks)
		results[i].MonthlyAverageRuptura = averageRuptura(results[i].Weeks)
	}

	return results
}

func filterMonthly(results []model.MonthlyStoreSummary, opts Options) []model.MonthlyStoreSummary {
	out := results[:0]
	for _, r := range results {
		if opts.Loja != "" && r.Loja != opts.Loja {
			continue
		}
		if term := strings.ToUpper(strings.TrimSpace(opts.Search)); term != "" && !strings.Contains(r.Loja, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func averageEtiqueta(weeks []model.WeekSlot) *float64 {
	sum, n := 0.0, 0
	for _, w := range weeks {
		if w.EtiquetaFinal != nil {
			sum += w.EtiquetaFinal.Value
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func averageRuptura(weeks []model.WeekSlot) *float64 {
	sum, n := 0.0, 0
	for _, w := range weeks {
		if w.RupturaFinal != nil {
			sum += w.RupturaFinal.Stats.GeneralPartial
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
