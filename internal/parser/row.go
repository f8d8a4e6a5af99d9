// Package parser converte tabelas decodificadas das planilhas de auditoria
// (três formatos: auditoria parcial, análise geral e classe de produto) no
// modelo canônico. Todas as funções são puras sobre a tabela já materializada.
package parser

import (
	"strconv"
	"strings"
)

// Row linha decodificada da planilha: cabeçalho normalizado -> valor textual.
// As planilhas vêm editadas à mão, então toda leitura é tolerante.
type Row map[string]string

// NormalizeRows remove espaços das chaves de cabeçalho de cada linha,
// preservando a ordem. Valores não são alterados.
func NormalizeRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		norm := make(Row, len(row))
		for k, v := range row {
			norm[strings.TrimSpace(k)] = v
		}
		out = append(out, norm)
	}
	return out
}

// Get busca o valor pela primeira grafia de cabeçalho que existir com conteúdo
func (r Row) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Has informa se alguma das grafias existe com conteúdo
func (r Row) Has(keys ...string) bool {
	_, ok := r.Get(keys...)
	return ok
}

// Values valores da linha, para testes de sentinela
func (r Row) Values() []string {
	out := make([]string, 0, len(r))
	for _, v := range r {
		out = append(out, v)
	}
	return out
}

// parseNumber coerção numérica tolerante: vazio ou lixo vira 0
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseCount coerção para contagens inteiras
func parseCount(s string) int {
	return int(parseNumber(s))
}
