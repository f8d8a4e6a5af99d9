package model

import "time"

// WeekRange janela semanal [domingo 00:00, sábado 23:59:59.999]
type WeekRange struct {
	Sunday   time.Time `json:"sunday"`
	Saturday time.Time `json:"saturday"`
}

// Contains informa se a data cai dentro da janela
func (w WeekRange) Contains(t time.Time) bool {
	return !t.Before(w.Sunday) && !t.After(w.Saturday)
}

// EtiquetaFinal média derivada de segunda e quinta
type EtiquetaFinal struct {
	Value    float64 `json:"value"`
	Monday   float64 `json:"monday"`
	Thursday float64 `json:"thursday"`
}

// StoreWeekSummary painel semanal de uma loja: um slot por dia útil de
// auditoria (seg a qui), a ruptura final da semana e a etiqueta derivada.
// Slots vazios ficam nil ("pendente"), nunca erro.
type StoreWeekSummary struct {
	Loja          string         `json:"loja"`
	Monday        *HistoryItem   `json:"monday"`
	Tuesday       *HistoryItem   `json:"tuesday"`
	Wednesday     *HistoryItem   `json:"wednesday"`
	Thursday      *HistoryItem   `json:"thursday"`
	Rupture       *HistoryItem   `json:"rupture"`
	EtiquetaFinal *EtiquetaFinal `json:"etiquetaFinal"`
}

// WeeklyResult resultado da reconstrução semanal
type WeeklyResult struct {
	Range                 WeekRange          `json:"range"`
	Stores                []StoreWeekSummary `json:"stores"`
	TotalRegisteredStores int                `json:"totalRegisteredStores"`
}

// WeekSlot uma semana de auditoria dentro do painel mensal
type WeekSlot struct {
	Label         string         `json:"weekLabel"`
	Start         time.Time      `json:"start"` // segunda-feira
	End           time.Time      `json:"end"`   // quinta-feira
	EtiquetaFinal *EtiquetaFinal `json:"etiquetaFinal"`
	RupturaFinal  *HistoryItem   `json:"rupturaFinal"`
}

// MonthlyStoreSummary painel mensal de uma loja
type MonthlyStoreSummary struct {
	Loja                   string     `json:"loja"`
	Weeks                  []WeekSlot `json:"weeks"`
	MonthlyAverageEtiqueta *float64   `json:"monthlyAverageEtiqueta"`
	MonthlyAverageRuptura  *float64   `json:"monthlyAverageRuptura"`
}
