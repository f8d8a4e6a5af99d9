// Package ingest coordena a importação de um relatório: decodifica a
// planilha, roda o parser do tipo, calcula os totais e persiste no
// histórico aplicando a política de retenção.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"

	"auditoria/internal/excel"
	"auditoria/internal/model"
	"auditoria/internal/parser"
	"auditoria/internal/store"
)

// ErrNeedManualSKU relatório de classe sem denominador conhecido: não há
// auditoria anterior com SKU e o operador não informou um valor
var ErrNeedManualSKU = errors.New("relatório de classe sem SKU de referência")

// Coordinator pipeline de importação
type Coordinator struct {
	store *store.Store
	now   func() time.Time
}

// NewCoordinator cria o coordenador de importação
func NewCoordinator(s *store.Store) *Coordinator {
	return &Coordinator{store: s, now: time.Now}
}

// Options parâmetros de uma importação
type Options struct {
	FileName   string
	ReportType model.ReportType
	Loja       string
	CustomDate string // YYYY-MM-DD, opcional
	// ManualSKU denominador informado pelo operador para relatórios de
	// classe sem auditoria anterior. Nil = não informado.
	ManualSKU *int
}

// Import executa a importação completa e devolve o item persistido
func (c *Coordinator) Import(r io.Reader, opts Options) (*model.HistoryItem, error) {
	if !opts.ReportType.Valid() {
		return nil, fmt.Errorf("tipo de relatório inválido: %q", opts.ReportType)
	}
	if opts.Loja == "" {
		return nil, errors.New("loja não informada")
	}

	rows, err := excel.Decode(r)
	if err != nil {
		return nil, err
	}

	var (
		data        []model.AuditRow
		classResult *model.ClassResult
	)
	switch opts.ReportType {
	case model.ReportAudit:
		data = parser.ParseAudit(rows)
	case model.ReportAnalysis, model.ReportRupture, model.ReportFinalRupture:
		data = parser.ParseAnalysis(rows)
	case model.ReportClass:
		res := parser.ParseProductClass(rows)
		classResult = &res
		data = res.Summary
	}

	var overrideSKU *int
	if opts.ReportType == model.ReportClass {
		sku, err := c.resolveClassSKU(opts)
		if err != nil {
			return nil, err
		}
		overrideSKU = &sku
	}

	item := c.buildItem(data, classResult, opts, overrideSKU)
	if err := c.store.InsertHistory(item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolveClassSKU o resumo de classe tem sku == notRead por construção,
// então o denominador real vem da auditoria mais recente da loja com SKU
// positivo, ou de um valor manual do operador.
func (c *Coordinator) resolveClassSKU(opts Options) (int, error) {
	items, err := c.store.ListHistory(opts.Loja, 0)
	if err != nil {
		return 0, err
	}
	for _, h := range items {
		if h.ReportType == model.ReportAudit && h.Stats.TotalSKU > 0 {
			return h.Stats.TotalSKU, nil
		}
	}
	if opts.ManualSKU != nil {
		return *opts.ManualSKU, nil
	}
	return 0, ErrNeedManualSKU
}

// buildItem calcula os totais e monta o HistoryItem pronto para persistir
func (c *Coordinator) buildItem(data []model.AuditRow, classResult *model.ClassResult, opts Options, overrideSKU *int) *model.HistoryItem {
	totalSKU := 0
	totalNotRead := 0
	outdatedSum := 0
	hasOutdated := false
	for _, row := range data {
		totalSKU += row.SKU
		totalNotRead += row.NotRead
		if row.Outdated != nil {
			hasOutdated = true
			outdatedSum += *row.Outdated
		}
	}
	if overrideSKU != nil {
		totalSKU = *overrideSKU
	}

	var totalOutdated *int
	if hasOutdated {
		totalOutdated = &outdatedSum
	}

	generalPartial := 0.0
	if totalSKU > 0 {
		generalPartial = float64(totalNotRead) / float64(totalSKU) * 100
	}
	// Ruptura é o único tipo com percentual arredondado, sempre para cima
	if opts.ReportType == model.ReportRupture {
		generalPartial = math.Ceil(generalPartial)
	}

	item := &model.HistoryItem{
		ID:         uuid.New().String(),
		Timestamp:  c.now(),
		FileName:   opts.FileName,
		ReportType: opts.ReportType,
		Data:       data,
		Stats: model.ReportStats{
			TotalSKU:       totalSKU,
			TotalNotRead:   totalNotRead,
			TotalOutdated:  totalOutdated,
			GeneralPartial: generalPartial,
		},
		CustomDate: c.ensureCustomDate(opts),
		Loja:       opts.Loja,
	}
	if classResult != nil {
		item.ClassDetails = classResult.Details
		item.CategoryStats = &classResult.CategoryStats
		item.CollaboratorStats = classResult.CollaboratorStats
	}
	return item
}

var reFileNameDate = regexp.MustCompile(`(\d{2})[-_](\d{2})[-_](\d{4})`)

// ExtractDateFromFileName lê dd-mm-yyyy ou dd_mm_yyyy do nome do arquivo
func ExtractDateFromFileName(fileName string) string {
	m := reFileNameDate.FindStringSubmatch(fileName)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
}

// ensureCustomDate todo registro persiste com data explícita: a informada,
// a extraída do nome do arquivo, ou a data corrente como último recurso
func (c *Coordinator) ensureCustomDate(opts Options) string {
	if opts.CustomDate != "" {
		return opts.CustomDate
	}
	if d := ExtractDateFromFileName(opts.FileName); d != "" {
		return d
	}
	return c.now().Format("2006-01-02")
}
