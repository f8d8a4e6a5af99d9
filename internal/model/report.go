package model

import "time"

// ReportType tipo de relatório importado
type ReportType string

const (
	ReportAudit        ReportType = "audit"
	ReportAnalysis     ReportType = "analysis"
	ReportClass        ReportType = "class"
	ReportRupture      ReportType = "rupture"
	ReportFinalRupture ReportType = "final_rupture"
)

// Valid informa se o tipo é um dos aceitos pelo sistema
func (t ReportType) Valid() bool {
	switch t {
	case ReportAudit, ReportAnalysis, ReportClass, ReportRupture, ReportFinalRupture:
		return true
	}
	return false
}

// AuditRow linha canônica de auditoria (unidade comum aos três formatos de planilha)
type AuditRow struct {
	ID                string  `json:"id"`
	Corridor          string  `json:"corridor"`
	SKU               int     `json:"sku"`
	NotRead           int     `json:"notRead"`
	Outdated          *int    `json:"outdated,omitempty"`
	PartialPercentage float64 `json:"partialPercentage"`
}

// ClassDetailRow registro por produto do relatório de classe.
// As chaves curtas seguem o payload histórico armazenado (c/p/e/r/l/s).
type ClassDetailRow struct {
	Code    string  `json:"c"`
	Product string  `json:"p"`
	Stock   float64 `json:"e"`
	Root    string  `json:"r"`
	Local   string  `json:"l"`
	Status  string  `json:"s"`
}

// CategoryStats partição mutuamente exclusiva das linhas do relatório de classe
type CategoryStats struct {
	SemEstoque            int `json:"semEstoque"`
	Desatualizado         int `json:"desatualizado"`
	NaoLidoComEstoque     int `json:"naoLidoComEstoque"`
	SemPresencaComEstoque int `json:"semPresencaComEstoque"`
}

// CollaboratorStats contagem de linhas por colaborador normalizado
type CollaboratorStats map[string]int

// ClassResult resultado completo do parser de classe de produto
type ClassResult struct {
	Summary           []AuditRow        `json:"summary"`
	Details           []ClassDetailRow  `json:"details"`
	CategoryStats     CategoryStats     `json:"categoryStats"`
	CollaboratorStats CollaboratorStats `json:"collaboratorStats"`
}

// ReportStats totais agregados de um relatório
type ReportStats struct {
	TotalSKU       int     `json:"totalSku"`
	TotalNotRead   int     `json:"totalNotRead"`
	TotalOutdated  *int    `json:"totalOutdated,omitempty"`
	GeneralPartial float64 `json:"generalPartial"`
}

// HistoryItem relatório persistido. Imutável após a importação,
// exceto CustomDate, que o operador pode editar.
type HistoryItem struct {
	ID                string            `json:"id"`
	Timestamp         time.Time         `json:"timestamp"`
	FileName          string            `json:"fileName"`
	ReportType        ReportType        `json:"reportType"`
	Data              []AuditRow        `json:"data"`
	ClassDetails      []ClassDetailRow  `json:"classDetails,omitempty"`
	CategoryStats     *CategoryStats    `json:"categoryStats,omitempty"`
	CollaboratorStats CollaboratorStats `json:"collaboratorStats,omitempty"`
	Stats             ReportStats       `json:"stats"`
	CustomDate        string            `json:"customDate,omitempty"` // YYYY-MM-DD
	Loja              string            `json:"loja"`
}

// EffectiveDate data efetiva do item: CustomDate ao meio-dia local quando
// definida, senão o instante de criação.
func (h *HistoryItem) EffectiveDate() time.Time {
	if h.CustomDate != "" {
		if d, err := time.ParseInLocation("2006-01-02", h.CustomDate, time.Local); err == nil {
			return d.Add(12 * time.Hour)
		}
	}
	return h.Timestamp
}
