// Package excel faz a ponte entre arquivos .xlsx e o modelo tabular dos
// parsers: decodifica a primeira aba em linhas cabeçalho->valor e gera o
// arquivo consolidado do resumo semanal.
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"auditoria/internal/parser"
)

// ErrFileRead arquivo que não pôde ser decodificado como planilha
var ErrFileRead = errors.New("não foi possível ler a planilha")

// Decode lê a primeira aba do arquivo e devolve uma linha por registro,
// mapeando cada célula pelo cabeçalho da primeira linha da aba. Cabeçalhos
// vazios são ignorados; a ordem das linhas é preservada.
func Decode(r io.Reader) ([]parser.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: arquivo sem abas", ErrFileRead)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if len(rows) <= 1 {
		return []parser.Row{}, nil
	}

	header := rows[0]
	out := make([]parser.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(parser.Row, len(header))
		for i, name := range header {
			if name == "" || i >= len(raw) {
				continue
			}
			if raw[i] != "" {
				row[name] = raw[i]
			}
		}
		out = append(out, row)
	}

	return out, nil
}
