package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/corretora-saude/api-formulario/internal/config"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/submissao"
)

// ConnectDataBase abre o Postgres com as credenciais do ambiente ou do
// Secrets Manager
func ConnectDataBase(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	database, err := gorm.Open(postgres.Open(DSN(cfg, username, password)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar ao banco: %w", err)
	}
	return database, nil
}

// DSN monta a string de conexão do Postgres
func DSN(cfg config.DBConfig, username, password string) string {
	var sslMode string
	if cfg.SSLModeDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)
}

// Migrar cria ou atualiza as tabelas do diretório e das submissões
func Migrar(db *gorm.DB) error {
	modelos := append(operadora.Modelos(), &submissao.Submissao{})
	return db.AutoMigrate(modelos...)
}
