package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corretora-saude/api-formulario/internal/operadora"
)

var seedCmd = &cobra.Command{
	Use:   "seed [arquivo.yaml]",
	Short: "Carrega operadoras, administradoras e supervisores de um YAML",
	Long: `Carrega o diretório a partir de um arquivo YAML:

  operadoras:
    - id: 1
      nome: Vida Plena Saúde
      ativa: true
  administradoras:
    - id: 7
      nome: Qualicorp
  supervisores:
    - id: 3
      nome: Carla Mendes

Registros existentes com o mesmo id são atualizados.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	dados, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var carga operadora.Carga
	if err := yaml.Unmarshal(dados, &carga); err != nil {
		return fmt.Errorf("ler %s: %w", args[0], err)
	}

	database, err := abrirBanco(cmd)
	if err != nil {
		return err
	}
	if err := operadora.NewRepository(database).Carga(cmd.Context(), carga); err != nil {
		return fmt.Errorf("carregar diretório: %w", err)
	}
	slog.Info("Diretório carregado",
		slog.Int("operadoras", len(carga.Operadoras)),
		slog.Int("administradoras", len(carga.Administradoras)),
		slog.Int("supervisores", len(carga.Supervisores)))
	return nil
}
