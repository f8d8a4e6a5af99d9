package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"auditoria/internal/model"
)

// StatusCategory categoria semântica de uma linha do relatório de classe
type StatusCategory int

const (
	CategoryNone StatusCategory = iota
	CategorySemEstoque
	CategoryDesatualizado
	CategoryNaoLidoComEstoque
	CategorySemPresencaComEstoque
)

// statusRules predicados avaliados de cima para baixo, primeiro que casar
// vence. A ordem garante a exclusividade mútua das categorias.
var statusRules = []struct {
	category StatusCategory
	match    func(status string) bool
}{
	{CategorySemEstoque, func(s string) bool {
		return strings.Contains(s, "sem estoque")
	}},
	{CategoryDesatualizado, func(s string) bool {
		return strings.Contains(s, "desatualizado")
	}},
	{CategoryNaoLidoComEstoque, func(s string) bool {
		return containsAny(s, "não lido", "não lidos") && strings.Contains(s, "estoque")
	}},
	{CategorySemPresencaComEstoque, func(s string) bool {
		return strings.Contains(s, "sem presença") && strings.Contains(s, "estoque")
	}},
}

// ClassifyStatus classifica o texto livre de situação em uma das quatro
// categorias relevantes, ou CategoryNone quando a linha não interessa.
// A comparação ignora maiúsculas.
func ClassifyStatus(status string) StatusCategory {
	lower := strings.ToLower(strings.TrimSpace(status))
	for _, rule := range statusRules {
		if rule.match(lower) {
			return rule.category
		}
	}
	return CategoryNone
}

var reStockJunk = regexp.MustCompile(`[^\d,.\-]`)

// parseStock estoque vem como número ou como texto sujo ("12 un", "1,5")
func parseStock(raw string) float64 {
	clean := reStockJunk.ReplaceAllString(strings.TrimSpace(raw), "")
	return parseNumber(clean)
}

var reParenGroup = regexp.MustCompile(`\(([^)]+)\)`)

// NormalizeCollaborator extrai e normaliza o nome do colaborador.
// Retorna vazio para os sentinelas "S/N"/"SN" e para células vazias.
func NormalizeCollaborator(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	name := raw
	if m := reParenGroup.FindStringSubmatch(raw); m != nil {
		name = strings.TrimSpace(m[1])
	}
	name = strings.ToUpper(name)
	if name == "S/N" || name == "SN" {
		return ""
	}
	return name
}

// ParseProductClass converte a planilha de classe de produto em resumo por
// classe, lista de detalhes, contagens por categoria e ranking de
// colaboradores. Diferente dos outros formatos, toda linha é candidata
// (não há banner).
func ParseProductClass(rows []Row) model.ClassResult {
	rows = NormalizeRows(rows)

	classCounts := map[string]int{}
	result := model.ClassResult{
		Details:           []model.ClassDetailRow{},
		CollaboratorStats: model.CollaboratorStats{},
	}

	for _, row := range rows {
		statusRaw, _ := row.Get("Situação")
		status := strings.TrimSpace(statusRaw)
		if status == "" {
			continue
		}
		statusLower := strings.ToLower(status)

		stockRaw, _ := row.Get("Estoque atual")
		stock := parseStock(stockRaw)

		category := ClassifyStatus(status)

		rootRaw, _ := row.Get("Classe de Produto Raiz")
		if rootRaw == "" {
			rootRaw = "OUTROS"
		}

		switch category {
		case CategorySemEstoque:
			result.CategoryStats.SemEstoque++
		case CategoryDesatualizado:
			result.CategoryStats.Desatualizado++
		case CategoryNaoLidoComEstoque, CategorySemPresencaComEstoque:
			// Guarda contra linhas com estoque zero marcadas errado:
			// só conta com estoque positivo ou "com estoque" explícito.
			if stock > 0 || strings.Contains(statusLower, "com estoque") {
				if category == CategoryNaoLidoComEstoque {
					result.CategoryStats.NaoLidoComEstoque++
				} else {
					result.CategoryStats.SemPresencaComEstoque++
				}
				classCounts[SanitizeName(rootRaw)]++
			}
		}

		// Ranking de colaboradores independe da classificação de situação
		userRaw, _ := row.Get("Usuário", "Colaborador")
		if name := NormalizeCollaborator(userRaw); name != "" {
			result.CollaboratorStats[name]++
		}

		if category != CategoryNone {
			code, _ := row.Get("Código")
			product, _ := row.Get("Produto")
			local, ok := row.Get("Local")
			if !ok {
				local = "S/N"
			}
			result.Details = append(result.Details, model.ClassDetailRow{
				Code:    strings.TrimSpace(code),
				Product: strings.TrimSpace(product),
				Stock:   stock,
				Root:    SanitizeName(rootRaw),
				Local:   local,
				Status:  status,
			})
		}
	}

	result.Summary = buildClassSummary(classCounts)
	return result
}

// buildClassSummary uma linha canônica por classe, ordenada por contagem
// decrescente. Por construção sku == notRead: cada item contado é, por
// definição, não lido ou sem presença, logo o percentual é 100.
func buildClassSummary(classCounts map[string]int) []model.AuditRow {
	names := make([]string, 0, len(classCounts))
	for name := range classCounts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if classCounts[names[i]] != classCounts[names[j]] {
			return classCounts[names[i]] > classCounts[names[j]]
		}
		return names[i] < names[j]
	})

	summary := make([]model.AuditRow, 0, len(names))
	for i, name := range names {
		count := classCounts[name]
		summary = append(summary, model.AuditRow{
			ID:                fmt.Sprintf("row-class-%d", i),
			Corridor:          name,
			SKU:               count,
			NotRead:           count,
			PartialPercentage: 100,
		})
	}
	return summary
}
