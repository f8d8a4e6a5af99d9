// Package server monta o servidor HTTP do painel.
package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"auditoria/internal/api"
	"auditoria/internal/config"
	"auditoria/internal/store"
)

// Server servidor HTTP
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer inicializa o banco, o handler da API e as rotas
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "auditoria.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
	}
	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// CORS liberado: o painel roda local, frontend servido à parte
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := api.NewHandler(s.store, cfg)
	group := s.router.Group("/api")
	{
		handler.RegisterRoutes(group)
	}

	if cfg.Server.DevMode {
		// Modo dev: o frontend roda no servidor de desenvolvimento
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run inicia o servidor
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close fecha os recursos do servidor
func (s *Server) Close() error {
	return s.store.Close()
}
