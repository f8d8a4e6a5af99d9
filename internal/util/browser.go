package util

import (
	"os/exec"
	"runtime"
)

// OpenBrowser abre o navegador padrão na URL do painel.
// Melhor esforço: o operador sempre pode abrir manualmente.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}
