// Package config carrega a configuração da aplicação a partir de um
// config.toml ao lado do executável; sem arquivo, valem os padrões.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuração da aplicação
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Loja   LojaConfig   `toml:"loja"`
}

// ServerConfig configuração do servidor HTTP
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig diretório de dados locais
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LojaConfig identidade da loja padrão desta instalação
type LojaConfig struct {
	Default string `toml:"default"`
	// HistoryLimit máximo de registros lidos por listagem
	HistoryLimit int `toml:"history_limit"`
}

// DefaultConfig configuração padrão
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20480,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Loja: LojaConfig{
			Default:      "204",
			HistoryLimit: 500,
		},
	}
}

// GetExeDir diretório do executável
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig lê config.toml ao lado do executável; ausência não é erro
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Loja.HistoryLimit <= 0 {
		cfg.Loja.HistoryLimit = 500
	}
	return cfg, nil
}

// EnsureDataDir garante o diretório de dados e devolve o caminho absoluto
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dir := cfg.Data.DataDir
	if !filepath.IsAbs(dir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dir = filepath.Join(exeDir, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
