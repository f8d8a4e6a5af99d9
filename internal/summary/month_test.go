package summary

import (
	"testing"
	"time"

	"auditoria/internal/model"
)

func TestWeeksOfMonth(t *testing.T) {
	t.Parallel()

	// Outubro de 2025 começa numa quarta: a semana 1 é a da segunda dia 6
	ref := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.Local)
	weeks := WeeksOfMonth(ref)

	if len(weeks) != 4 {
		t.Fatalf("expected 4 semanas, got %d", len(weeks))
	}
	if weeks[0].Label != "Semana 1" || weeks[0].Start.Day() != 6 {
		t.Fatalf("semana 1 inesperada: %+v", weeks[0])
	}
	for i, w := range weeks {
		if w.Start.Weekday() != time.Monday {
			t.Fatalf("semana %d não começa na segunda: %v", i+1, w.Start)
		}
		if w.End.Weekday() != time.Thursday {
			t.Fatalf("semana %d não termina na quinta: %v", i+1, w.End)
		}
	}
	if weeks[3].Start.Day() != 27 {
		t.Fatalf("última segunda want=27 got=%d", weeks[3].Start.Day())
	}
}

func TestBuildMonthly_Slots(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.Local)
	ts := time.Date(2025, time.October, 6, 8, 0, 0, 0, time.Local)

	history := []model.HistoryItem{
		// Semana 1: segunda 06/10 e quinta 09/10
		item("204", model.ReportAudit, "2025-10-06", ts, 2),
		item("204", model.ReportAnalysis, "2025-10-09", ts, 6),
		// Semana 1: ruptura no sábado da janela
		item("204", model.ReportFinalRupture, "2025-10-11", ts, 10),
		// Semana 3: só segunda, sem quinta
		item("204", model.ReportAudit, "2025-10-20", ts, 8),
	}

	results := BuildMonthly(history, ref, Options{})
	if len(results) != 1 {
		t.Fatalf("expected 1 loja, got %d", len(results))
	}
	s := results[0]
	if len(s.Weeks) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(s.Weeks))
	}

	w1 := s.Weeks[0]
	if w1.EtiquetaFinal == nil || w1.EtiquetaFinal.Value != 4 {
		t.Fatalf("semana 1 etiqueta inesperada: %+v", w1.EtiquetaFinal)
	}
	if w1.RupturaFinal == nil || w1.RupturaFinal.Stats.GeneralPartial != 10 {
		t.Fatalf("semana 1 ruptura inesperada: %+v", w1.RupturaFinal)
	}
	// Segunda sem quinta não fecha etiqueta
	if s.Weeks[2].EtiquetaFinal != nil {
		t.Fatalf("semana 3 não deveria ter etiqueta: %+v", s.Weeks[2].EtiquetaFinal)
	}

	if s.MonthlyAverageEtiqueta == nil || *s.MonthlyAverageEtiqueta != 4 {
		t.Fatalf("média de etiqueta inesperada: %v", s.MonthlyAverageEtiqueta)
	}
	if s.MonthlyAverageRuptura == nil || *s.MonthlyAverageRuptura != 10 {
		t.Fatalf("média de ruptura inesperada: %v", s.MonthlyAverageRuptura)
	}
}

func TestBuildMonthly_MostRecentWins(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.Local)
	older := time.Date(2025, time.October, 6, 8, 0, 0, 0, time.Local)
	newer := time.Date(2025, time.October, 6, 16, 0, 0, 0, time.Local)

	// No mensal a análise não tem prioridade: recência decide
	history := []model.HistoryItem{
		item("204", model.ReportAnalysis, "2025-10-06", older, 3),
		item("204", model.ReportAudit, "2025-10-06", newer, 5),
		item("204", model.ReportAudit, "2025-10-09", older, 7),
	}
	results := BuildMonthly(history, ref, Options{})
	w1 := results[0].Weeks[0]
	if w1.EtiquetaFinal == nil || w1.EtiquetaFinal.Monday != 5 {
		t.Fatalf("a mais recente deveria ocupar a segunda: %+v", w1.EtiquetaFinal)
	}
}

func TestBuildMonthly_AveragesAbsentWithoutWeeks(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.Local)
	ts := time.Date(2025, time.October, 7, 8, 0, 0, 0, time.Local)

	// Só uma terça: nenhum slot fecha, as médias ficam ausentes
	history := []model.HistoryItem{
		item("204", model.ReportAudit, "2025-10-07", ts, 5),
	}
	results := BuildMonthly(history, ref, Options{})
	if len(results) != 1 {
		t.Fatalf("expected 1 loja, got %d", len(results))
	}
	if results[0].MonthlyAverageEtiqueta != nil || results[0].MonthlyAverageRuptura != nil {
		t.Fatalf("médias deveriam ser ausentes: %+v", results[0])
	}
}
