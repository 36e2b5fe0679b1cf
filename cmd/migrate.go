package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/corretora-saude/api-formulario/internal/config"
	"github.com/corretora-saude/api-formulario/internal/utils/db"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria ou atualiza as tabelas do diretório e das submissões",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := abrirBanco(cmd)
		if err != nil {
			return err
		}
		if err := db.Migrar(database); err != nil {
			return fmt.Errorf("migrar: %w", err)
		}
		slog.Info("Migrações aplicadas")
		return nil
	},
}

// abrirBanco só precisa da configuração do banco, sem webhook ou JWT
func abrirBanco(cmd *cobra.Command) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log.NewWithLevel("api-formulario", os.Getenv("ENV"), Version,
		log.ParseLevel(cfg.LogLevel)))
	return db.ConnectDataBase(cmd.Context(), cfg.DB)
}
