package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"auditoria/internal/config"
	"auditoria/internal/server"
	"auditoria/internal/util"
)

var (
	port    = flag.Int("port", 0, "porta do servidor (sobrepõe o config.toml)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento")
	dataDir = flag.String("dataDir", "", "diretório de dados (sobrepõe o config.toml)")
	loja    = flag.String("loja", "", "loja padrão desta instalação")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Auditoria - Painel de Auditoria de Lojas")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("falha ao carregar a configuração, usando padrões: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *loja != "" {
		cfg.Loja.Default = *loja
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("falha ao criar o diretório de dados: %v", err)
	} else {
		fmt.Printf("Diretório de dados: %s\n", dir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Servidor ouvindo na porta %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("falha ao iniciar o servidor: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("Não foi possível abrir o navegador, acesse: %s\n", url)
		}
	} else {
		fmt.Printf("Modo dev: acesse %s\n", url)
	}

	fmt.Println("\nCtrl+C para encerrar...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nEncerrando...")
	if err := srv.Close(); err != nil {
		log.Printf("falha ao fechar recursos: %v", err)
	}
}
