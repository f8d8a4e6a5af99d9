// Package summary reconstrói os painéis semanais e mensais a partir do
// histórico completo. O motor é uma função pura de (histórico, data de
// referência, escopo): nada de relógio ambiente, nada de estado.
package summary

import (
	"sort"
	"strings"
	"time"

	"auditoria/internal/model"
)

// Options escopo da reconstrução
type Options struct {
	// Loja restringe o painel a uma loja quando não vazio
	Loja string
	// Search filtra lojas cujo código contenha o termo
	Search string
}

// WeekOf janela semanal (domingo a sábado) que contém a data de referência
func WeekOf(ref time.Time) model.WeekRange {
	y, m, d := ref.Date()
	sunday := time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -int(ref.Weekday()))
	saturday := sunday.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	return model.WeekRange{Sunday: sunday, Saturday: saturday}
}

// BuildWeekly reconstrói o painel semanal por loja: um slot por dia útil
// (seg a qui), a ruptura mais recente da semana e a etiqueta final derivada.
func BuildWeekly(history []model.HistoryItem, ref time.Time, opts Options) model.WeeklyResult {
	week := WeekOf(ref)

	relevant := make([]model.HistoryItem, 0, len(history))
	for _, item := range history {
		if week.Contains(item.EffectiveDate()) {
			relevant = append(relevant, item)
		}
	}

	stores := map[string]*model.StoreWeekSummary{}
	storeFor := func(loja string) *model.StoreWeekSummary {
		s, ok := stores[loja]
		if !ok {
			s = &model.StoreWeekSummary{Loja: loja}
			stores[loja] = s
		}
		return s
	}

	for i := range relevant {
		item := &relevant[i]
		s := storeFor(item.Loja)

		// Ruptura final: slot próprio, independente do dia, mais recente vence
		if item.ReportType == model.ReportRupture || item.ReportType == model.ReportFinalRupture {
			if s.Rupture == nil || item.Timestamp.After(s.Rupture.Timestamp) {
				s.Rupture = item
			}
			continue
		}

		if item.ReportType != model.ReportAudit && item.ReportType != model.ReportAnalysis {
			continue
		}

		slot := daySlot(s, item.EffectiveDate().Weekday())
		if slot == nil {
			// Sex/sáb/dom não têm slot no painel
			continue
		}
		*slot = mergeCandidate(*slot, item)
	}

	results := make([]model.StoreWeekSummary, 0, len(stores))
	for _, s := range stores {
		if s.Monday != nil && s.Thursday != nil {
			s.EtiquetaFinal = etiquetaFinal(s.Monday, s.Thursday)
		}
		results = append(results, *s)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Loja < results[j].Loja })

	results = filterStores(results, opts)

	return model.WeeklyResult{
		Range:                 week,
		Stores:                results,
		TotalRegisteredStores: countRegisteredStores(relevant),
	}
}

func daySlot(s *model.StoreWeekSummary, day time.Weekday) **model.HistoryItem {
	switch day {
	case time.Monday:
		return &s.Monday
	case time.Tuesday:
		return &s.Tuesday
	case time.Wednesday:
		return &s.Wednesday
	case time.Thursday:
		return &s.Thursday
	default:
		return nil
	}
}

// mergeCandidate regra de prioridade do slot diário:
// slot vazio recebe o candidato; análise substitui auditoria
// incondicionalmente (recência não conta); entre iguais, o mais
// recente vence. Auditoria nunca desloca análise.
func mergeCandidate(current *model.HistoryItem, candidate *model.HistoryItem) *model.HistoryItem {
	if current == nil {
		return candidate
	}
	if candidate.ReportType == model.ReportAnalysis && current.ReportType != model.ReportAnalysis {
		return candidate
	}
	if candidate.ReportType == current.ReportType && candidate.Timestamp.After(current.Timestamp) {
		return candidate
	}
	return current
}

func etiquetaFinal(monday, thursday *model.HistoryItem) *model.EtiquetaFinal {
	return &model.EtiquetaFinal{
		Value:    (monday.Stats.GeneralPartial + thursday.Stats.GeneralPartial) / 2,
		Monday:   monday.Stats.GeneralPartial,
		Thursday: thursday.Stats.GeneralPartial,
	}
}

func filterStores(results []model.StoreWeekSummary, opts Options) []model.StoreWeekSummary {
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

// countRegisteredStores lojas distintas com registro na janela,
// ignorando o código reservado "00"
func countRegisteredStores(items []model.HistoryItem) int {
	seen := map[string]struct{}{}
	for _, item := range items {
		if item.Loja == "" || item.Loja == "00" {
			continue
		}
		seen[item.Loja] = struct{}{}
	}
	return len(seen)
}
