package parser

import (
	"regexp"
	"strings"
)

// UnknownLabel rótulo usado quando a planilha não traz descrição
const UnknownLabel = "Desconhecido"

var (
	reStorePrefix = regexp.MustCompile(`(?i)^(Loja\s+)?\d+\s*-\s*`)
	reSeparators  = regexp.MustCompile(`[-\x{2013}\x{2014}/]`)
)

// SanitizeName reduz um rótulo ruidoso à sua primeira parte com conteúdo.
// Ex: "204 - CO02 - CO02" vira "CO02"; "F01 - F01" vira "F01".
// Idempotente: o resultado não contém mais separadores.
func SanitizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnknownLabel
	}

	cleaned := strings.TrimSpace(reStorePrefix.ReplaceAllString(name, ""))

	for _, part := range reSeparators.Split(cleaned, -1) {
		if p := strings.TrimSpace(part); p != "" {
			return p
		}
	}
	return cleaned
}
